package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/deltasync/internal/entity"
	"github.com/iudanet/deltasync/internal/models"
)

// Поля SELECT по типам сущностей
const (
	userColumns         = `id, email, display_name, role, status, password_hash, api_token, theme, language, notify_email, notify_push, notify_sms, updated_at`
	brokerColumns       = `id, name, country, internal_notes, regulators, platforms, spread_min, spread_avg, rating, is_active, updated_at`
	marketColumns       = `id, symbol, name, category, status, price, change_24h, volume, high, low, updated_at`
	notificationColumns = `id, user_id, category, title, body, channel, priority, is_read, metadata, created_at`
)

// tableSpec описывает таблицу типа сущности и колонки, доступные фильтрам
type tableSpec struct {
	table    string
	columns  string
	timeCol  string
	status   bool
	category bool
	userID   bool
}

var tables = map[models.EntityType]tableSpec{
	models.EntityUser:         {table: "users", columns: userColumns, timeCol: "updated_at", status: true},
	models.EntityBroker:       {table: "brokers", columns: brokerColumns, timeCol: "updated_at"},
	models.EntityMarket:       {table: "markets", columns: marketColumns, timeCol: "updated_at", status: true, category: true},
	models.EntityNotification: {table: "notifications", columns: notificationColumns, timeCol: "created_at", category: true, userID: true},
}

type rowScanner interface {
	Scan(dest ...any) error
}

// FindOne returns the entity of the given type or entity.ErrNotFound
func (s *Storage) FindOne(ctx context.Context, entityType models.EntityType, id string) (models.Entity, error) {
	spec, ok := tables[entityType]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, spec.columns, spec.table)
	row := s.db.QueryRowContext(ctx, query, id)

	e, err := scanEntity(entityType, row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", entityType, err)
	}
	return e, nil
}

// FindMany returns up to limit entities matching the filter, ordered by id
func (s *Storage) FindMany(ctx context.Context, entityType models.EntityType, filter entity.Filter, limit int) ([]models.Entity, error) {
	spec, ok := tables[entityType]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}

	var (
		where []string
		args  []any
	)
	if filter.Status != "" && spec.status {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Category != "" && spec.category {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.UserID != "" && spec.userID {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if !filter.UpdatedAfter.IsZero() {
		where = append(where, spec.timeCol+" > ?")
		args = append(args, filter.UpdatedAfter.UnixMilli())
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, spec.columns, spec.table)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", spec.table, err)
	}
	defer rows.Close()

	result := make([]models.Entity, 0)
	for rows.Next() {
		e, err := scanEntity(entityType, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", entityType, err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func scanEntity(entityType models.EntityType, row rowScanner) (models.Entity, error) {
	switch entityType {
	case models.EntityUser:
		return scanUser(row)
	case models.EntityBroker:
		return scanBroker(row)
	case models.EntityMarket:
		return scanMarket(row)
	case models.EntityNotification:
		return scanNotification(row)
	default:
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                models.User
		email, push, sms int
		updatedAt        int64
	)
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.Status, &u.PasswordHash, &u.APIToken,
		&u.Preferences.Theme, &u.Preferences.Language, &email, &push, &sms, &updatedAt)
	if err != nil {
		return nil, err
	}
	u.Preferences.Notifications = models.NotificationPreferences{Email: email != 0, Push: push != 0, SMS: sms != 0}
	u.UpdatedAt = time.UnixMilli(updatedAt)
	return &u, nil
}

func scanBroker(row rowScanner) (*models.Broker, error) {
	var (
		b                     models.Broker
		regulators, platforms string
		isActive              int
		updatedAt             int64
	)
	err := row.Scan(&b.ID, &b.Name, &b.Country, &b.InternalNotes, &regulators, &platforms,
		&b.Spreads.Min, &b.Spreads.Avg, &b.Rating, &isActive, &updatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(regulators), &b.Regulators); err != nil {
		return nil, fmt.Errorf("failed to decode regulators: %w", err)
	}
	if err := json.Unmarshal([]byte(platforms), &b.Platforms); err != nil {
		return nil, fmt.Errorf("failed to decode platforms: %w", err)
	}
	b.IsActive = isActive != 0
	b.UpdatedAt = time.UnixMilli(updatedAt)
	return &b, nil
}

func scanMarket(row rowScanner) (*models.Market, error) {
	var (
		m         models.Market
		updatedAt int64
	)
	err := row.Scan(&m.ID, &m.Symbol, &m.Name, &m.Category, &m.Status, &m.Price, &m.Change24h,
		&m.Volume, &m.High, &m.Low, &updatedAt)
	if err != nil {
		return nil, err
	}
	m.UpdatedAt = time.UnixMilli(updatedAt)
	return &m, nil
}

func scanNotification(row rowScanner) (*models.Notification, error) {
	var (
		n         models.Notification
		read      int
		metadata  string
		createdAt int64
	)
	err := row.Scan(&n.ID, &n.UserID, &n.Category, &n.Title, &n.Body, &n.Channel, &n.Priority,
		&read, &metadata, &createdAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(metadata), &n.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	n.Read = read != 0
	n.CreatedAt = time.UnixMilli(createdAt)
	return &n, nil
}

// SaveUser creates or replaces a user
func (s *Storage) SaveUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email, display_name = excluded.display_name,
			role = excluded.role, status = excluded.status,
			password_hash = excluded.password_hash, api_token = excluded.api_token,
			theme = excluded.theme, language = excluded.language,
			notify_email = excluded.notify_email, notify_push = excluded.notify_push,
			notify_sms = excluded.notify_sms, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.Email, u.DisplayName, u.Role, u.Status, u.PasswordHash, u.APIToken,
		u.Preferences.Theme, u.Preferences.Language,
		boolToInt(u.Preferences.Notifications.Email),
		boolToInt(u.Preferences.Notifications.Push),
		boolToInt(u.Preferences.Notifications.SMS),
		u.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// SaveBroker creates or replaces a broker
func (s *Storage) SaveBroker(ctx context.Context, b *models.Broker) error {
	regulators, err := marshalStrings(b.Regulators)
	if err != nil {
		return err
	}
	platforms, err := marshalStrings(b.Platforms)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO brokers (` + brokerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, country = excluded.country,
			internal_notes = excluded.internal_notes,
			regulators = excluded.regulators, platforms = excluded.platforms,
			spread_min = excluded.spread_min, spread_avg = excluded.spread_avg,
			rating = excluded.rating, is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		b.ID, b.Name, b.Country, b.InternalNotes, regulators, platforms,
		b.Spreads.Min, b.Spreads.Avg, b.Rating, boolToInt(b.IsActive), b.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save broker: %w", err)
	}
	return nil
}

// SaveMarket creates or replaces a market
func (s *Storage) SaveMarket(ctx context.Context, m *models.Market) error {
	query := `
		INSERT INTO markets (` + marketColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			symbol = excluded.symbol, name = excluded.name,
			category = excluded.category, status = excluded.status,
			price = excluded.price, change_24h = excluded.change_24h,
			volume = excluded.volume, high = excluded.high, low = excluded.low,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		m.ID, m.Symbol, m.Name, m.Category, m.Status, m.Price, m.Change24h,
		m.Volume, m.High, m.Low, m.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save market: %w", err)
	}
	return nil
}

// SaveNotification creates or replaces a notification
func (s *Storage) SaveNotification(ctx context.Context, n *models.Notification) error {
	meta := n.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	metadata, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id, category = excluded.category,
			title = excluded.title, body = excluded.body, channel = excluded.channel,
			priority = excluded.priority, is_read = excluded.is_read,
			metadata = excluded.metadata, created_at = excluded.created_at
	`

	_, err = s.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Category, n.Title, n.Body, n.Channel, n.Priority,
		boolToInt(n.Read), string(metadata), n.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// Save stores any supported entity
func (s *Storage) Save(ctx context.Context, e models.Entity) error {
	switch v := e.(type) {
	case *models.User:
		return s.SaveUser(ctx, v)
	case *models.Broker:
		return s.SaveBroker(ctx, v)
	case *models.Market:
		return s.SaveMarket(ctx, v)
	case *models.Notification:
		return s.SaveNotification(ctx, v)
	default:
		return fmt.Errorf("unsupported entity %T", e)
	}
}

// Delete removes an entity; a missing entity is not an error
func (s *Storage) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	spec, ok := tables[entityType]
	if !ok {
		return fmt.Errorf("unknown entity type %q", entityType)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+spec.table+` WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", entityType, err)
	}
	return nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}
