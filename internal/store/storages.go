package store

import "github.com/MKhiriev/go-task-manager/internal/logger"

// Storages groups the repositories handed to the service layer.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
	TaskRepository    TaskRepository
}

// NewStorages builds all repositories on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		TaskRepository:    NewTaskRepository(db, log),
	}
}
