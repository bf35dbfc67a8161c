package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MrSnakeDoc/tacto/internal/logger"
)

type taskModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Status      string   `gorm:"index;not null"`
	Priority    string   `gorm:"not null"`
	Tags        []string `gorm:"serializer:json"`
	StartDate   *time.Time
	Deadline    *time.Time
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (taskModel) TableName() string { return "tasks" }

func toModel(t Task) taskModel {
	return taskModel{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Tags:        t.Tags,
		StartDate:   t.StartDate,
		Deadline:    t.Deadline,
	}
}

func (m taskModel) toTask() Task {
	id, _ := uuid.Parse(m.ID)
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return Task{
		ID:          id,
		Name:        m.Name,
		Description: m.Description,
		Status:      Status(m.Status),
		Priority:    Priority(m.Priority),
		Tags:        tags,
		StartDate:   m.StartDate,
		Deadline:    m.Deadline,
	}
}

// Store is the task table.
type Store struct {
	db  *gorm.DB
	log logger.Logger
}

// Open creates the database file and its directory if needed and migrates the schema.
func Open(path string, log logger.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create tasks directory: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	if err := db.AutoMigrate(&taskModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tasks schema: %w", err)
	}
	log.Info("tasks database ready", logger.String("path", path))
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Create validates t, assigns a fresh id and stores it.
func (s *Store) Create(ctx context.Context, t Task) (Task, error) {
	t.Normalize()
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	t.ID = uuid.New()

	m := toModel(t)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	s.log.Debug("task created", logger.String("id", m.ID), logger.String("name", t.Name))
	return m.toTask(), nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (Task, error) {
	var m taskModel
	err := s.db.WithContext(ctx).First(&m, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return m.toTask(), nil
}

// Update replaces every editable field of an existing task.
func (s *Store) Update(ctx context.Context, t Task) (Task, error) {
	t.Normalize()
	if err := t.Validate(); err != nil {
		return Task{}, err
	}

	var existing taskModel
	err := s.db.WithContext(ctx).First(&existing, "id = ?", t.ID.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	m := toModel(t)
	m.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return m.toTask(), nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&taskModel{}, "id = ?", id.String())
	if res.Error != nil {
		return fmt.Errorf("failed to delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the tasks matching f in creation order.
func (s *Store) List(ctx context.Context, f Filter) ([]Task, error) {
	q := s.db.WithContext(ctx).Order("created_at")
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var models []taskModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	out := make([]Task, 0, len(models))
	for _, m := range models {
		t := m.toTask()
		if f.Tag != "" && !t.HasTag(f.Tag) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
