package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/models"
)

const (
	userColumns = `id, name, email, age, password_hash, created_at, updated_at`
	taskColumns = `id, description, completed, owner_id, created_at, updated_at`
)

const (
	createUser = `INSERT INTO users (id, name, email, age, password_hash)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	deleteUserTokens = `DELETE FROM user_tokens WHERE user_id = $1;`
	deleteUserTasks  = `DELETE FROM tasks WHERE owner_id = $1;`
	deleteUser       = `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns + `;`

	setUserAvatar = `UPDATE users SET avatar = $2, updated_at = NOW() WHERE id = $1;`
	getUserAvatar = `SELECT avatar FROM users WHERE id = $1;`
)

const (
	addToken      = `INSERT INTO user_tokens (user_id, token_hash) VALUES ($1, $2);`
	removeToken   = `DELETE FROM user_tokens WHERE user_id = $1 AND token_hash = $2;`
	clearTokens   = `DELETE FROM user_tokens WHERE user_id = $1;`
	pruneTokens   = `DELETE FROM user_tokens WHERE created_at < $1;`
	containsToken = `SELECT EXISTS (
        SELECT 1 FROM user_tokens WHERE user_id = $1 AND token_hash = $2
    );`
)

const (
	createTask = `INSERT INTO tasks (id, description, completed, owner_id)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + taskColumns + `;`

	getTask = `SELECT ` + taskColumns + `
    FROM tasks
    WHERE id = $1 AND owner_id = $2;`

	deleteTask = `DELETE FROM tasks
    WHERE id = $1 AND owner_id = $2
    RETURNING ` + taskColumns + `;`
)

// sortableTaskColumns is the set of columns a listing may be ordered by.
var sortableTaskColumns = map[string]struct{}{
	"created_at":  {},
	"updated_at":  {},
	"description": {},
	"completed":   {},
}

// psql is the squirrel statement builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListTasksQuery builds the owner-scoped SELECT for a task listing.
// Without an explicit sort the tasks come back in creation order.
func buildListTasksQuery(q models.TaskListQuery) (string, []any, error) {
	builder := psql.
		Select(strings.Split(taskColumns, ", ")...).
		From("tasks").
		Where(sq.Eq{"owner_id": q.OwnerID})

	if q.Completed != nil {
		builder = builder.Where(sq.Eq{"completed": *q.Completed})
	}

	column, direction := "created_at", models.SortAsc
	if q.SortBy != "" {
		if _, ok := sortableTaskColumns[q.SortBy]; !ok {
			return "", nil, fmt.Errorf("%w: unknown sort column %q", ErrBuildingSQLQuery, q.SortBy)
		}
		column, direction = q.SortBy, models.SortDesc
		if q.SortDirection == models.SortAsc {
			direction = models.SortAsc
		}
	}
	builder = builder.OrderBy(column+" "+strings.ToUpper(string(direction)), "id ASC")

	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}
	if q.Skip > 0 {
		builder = builder.Offset(q.Skip)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateTaskQuery builds an owner-scoped partial UPDATE returning the
// updated row.
func buildUpdateTaskQuery(ownerID, taskID uuid.UUID, update models.TaskUpdate) (string, []any, error) {
	builder := psql.Update("tasks").Set("updated_at", sq.Expr("NOW()"))

	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Completed != nil {
		builder = builder.Set("completed", *update.Completed)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": taskID, "owner_id": ownerID}).
		Suffix("RETURNING " + taskColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateUserQuery builds a partial UPDATE of the user profile. The
// plaintext password is never written; only PasswordHash is.
func buildUpdateUserQuery(userID uuid.UUID, update models.UserUpdate) (string, []any, error) {
	builder := psql.Update("users").Set("updated_at", sq.Expr("NOW()"))

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.Age != nil {
		builder = builder.Set("age", *update.Age)
	}
	if update.PasswordHash != nil {
		builder = builder.Set("password_hash", *update.PasswordHash)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
