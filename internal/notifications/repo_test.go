package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	"github.com/omaralfarsi/fleetledger-backend/pkg/pagination"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Notification{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func seedNotifications(t *testing.T, repo Repository, n int) []models.Notification {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := make([]models.Notification, 0, n)
	for i := 0; i < n; i++ {
		row := models.Notification{
			Title:     "Maintenance due for truck KSA-1024",
			Message:   "Please schedule maintenance",
			Type:      enums.NotificationTypeMaintenance,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Create(ctx, &row); err != nil {
			t.Fatalf("create notification: %v", err)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestRepository_ListNewestFirstWithCursor(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()
	rows := seedNotifications(t, repo, 5)

	firstPage, err := repo.List(ctx, 3, nil)
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(firstPage) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(firstPage))
	}
	if firstPage[0].ID != rows[4].ID || firstPage[2].ID != rows[2].ID {
		t.Fatalf("expected newest first, got ids %d..%d", firstPage[0].ID, firstPage[2].ID)
	}

	last := firstPage[len(firstPage)-1]
	secondPage, err := repo.List(ctx, 3, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(secondPage) != 2 {
		t.Fatalf("expected 2 remaining rows, got %d", len(secondPage))
	}
	if secondPage[0].ID != rows[1].ID || secondPage[1].ID != rows[0].ID {
		t.Fatalf("unexpected second page ids %d, %d", secondPage[0].ID, secondPage[1].ID)
	}
}

func TestRepository_ListUnreadSkipsRead(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()
	rows := seedNotifications(t, repo, 3)

	if err := repo.MarkRead(ctx, rows[1].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	unread, err := repo.ListUnread(ctx)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 2 {
		t.Fatalf("expected 2 unread rows, got %d", len(unread))
	}
	if unread[0].ID != rows[0].ID || unread[1].ID != rows[2].ID {
		t.Fatalf("unexpected unread ids %d, %d", unread[0].ID, unread[1].ID)
	}
}

func TestRepository_MarkReadMissing(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	err := repo.MarkRead(context.Background(), 404)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRepository_DeleteMissing(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()
	rows := seedNotifications(t, repo, 1)

	if err := repo.Delete(ctx, rows[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err := repo.Delete(ctx, rows[0].ID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
