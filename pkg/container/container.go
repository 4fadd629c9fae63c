package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookcatalog-backend/internal/config"
	"bookcatalog-backend/internal/infrastructure/database"
	"bookcatalog-backend/internal/infrastructure/storage"

	"bookcatalog-backend/internal/domains/author"
	authorHandler "bookcatalog-backend/internal/domains/author/handler"
	authorRepo "bookcatalog-backend/internal/domains/author/repository"
	authorService "bookcatalog-backend/internal/domains/author/service"

	"bookcatalog-backend/internal/domains/category"
	categoryHandler "bookcatalog-backend/internal/domains/category/handler"
	categoryRepo "bookcatalog-backend/internal/domains/category/repository"
	categoryService "bookcatalog-backend/internal/domains/category/service"

	"bookcatalog-backend/internal/domains/book"
	bookHandler "bookcatalog-backend/internal/domains/book/handler"
	bookRepo "bookcatalog-backend/internal/domains/book/repository"
	bookService "bookcatalog-backend/internal/domains/book/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application.
// Mọi field là singleton, sống suốt app lifetime.
type Container struct {
	// Infrastructure layer
	Config  *config.Config
	DB      *database.PostgresDB
	Storage storage.Store

	// Repository layer
	CategoryRepo category.Repository
	AuthorRepo   author.Repository
	BookRepo     book.Repository

	// Service layer
	CategoryService category.Service
	AuthorService   author.Service
	BookService     book.Service

	// Handler layer
	CategoryHandler *categoryHandler.CategoryHandler
	AuthorHandler   *authorHandler.AuthorHandler
	BookHandler     *bookHandler.BookHandler
}

// NewContainer initialize dependency graph theo thứ tự:
// config -> infrastructure -> repositories -> services -> handlers.
// Thứ tự sai là panic, nên đừng đảo.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	c.DB = db
	log.Println("✅ PostgreSQL connected")

	// ========================================
	// STEP 3: INITIALIZE MEDIA STORAGE
	// ========================================
	log.Println("🪣  Connecting to MinIO...")

	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	c.Storage = store
	log.Println("✅ MinIO connected")

	// ========================================
	// STEP 4: WIRE DOMAINS
	// ========================================
	c.CategoryRepo = categoryRepo.NewPostgresRepository(db.Pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)

	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Storage)
	c.BookService = bookService.NewBookService(c.BookRepo, c.Storage)

	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)

	log.Println("✅ DI Container ready")
	return c, nil
}

// Cleanup đóng các kết nối giữ bởi container, gọi khi shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}

	log.Println("✅ Container cleanup completed")
}
