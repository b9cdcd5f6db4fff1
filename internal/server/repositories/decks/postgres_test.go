package decks

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
)

func sampleTime(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2025-06-01T10:00:00Z")
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return ts
}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+decks\s*\(id,\s*name,\s*description,\s*owner_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at,\s*last_updated\s*$`

	rows := sqlmock.NewRows([]string{"id", "created_at", "last_updated"}).
		AddRow("d-1", sampleTime(t), sampleTime(t))
	mock.ExpectQuery(q).
		WithArgs("d-1", "Biology", "cells and such", "user_1").
		WillReturnRows(rows)

	deck := &models.Deck{ID: "d-1", Name: "Biology", Description: "cells and such", OwnerID: "user_1"}
	got, err := repo.Create(context.Background(), deck)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "d-1" || got.CreatedAt.IsZero() || got.LastUpdated.IsZero() {
		t.Fatalf("unexpected deck: %+v", got)
	}
}

func TestCreate_GeneratesID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at", "last_updated"}).
		AddRow("generated", sampleTime(t), sampleTime(t))
	mock.ExpectQuery(`INSERT\s+INTO\s+decks`).WillReturnRows(rows)

	deck := &models.Deck{Name: "Biology", OwnerID: "user_1"}
	if _, err := repo.Create(context.Background(), deck); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if deck.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+decks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WithArgs("d-1", "user_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "d-1", "user_1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_WrongOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+decks`).
		WithArgs("d-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "d-1", "intruder")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*name,`).
		WithArgs("ghost", "user_1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost", "user_1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListForOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "owner_id", "created_at", "last_updated"}).
		AddRow("d-1", "Biology", "", "user_1", sampleTime(t), sampleTime(t)).
		AddRow("d-2", "History", "wars", "user_1", sampleTime(t), sampleTime(t))
	mock.ExpectQuery(`SELECT\s+id,\s*name,.*FROM\s+decks\s+WHERE\s+owner_id\s*=\s*\$1`).
		WithArgs("user_1").
		WillReturnRows(rows)

	got, err := repo.ListForOwner(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("ListForOwner error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "d-1" || got[1].Name != "History" {
		t.Fatalf("unexpected decks: %+v", got)
	}
}

func TestCountForOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+decks`).
		WithArgs("user_1").
		WillReturnRows(rows)

	got, err := repo.CountForOwner(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("CountForOwner error: %v", err)
	}
	if got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
}

func TestLockOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`SELECT\s+pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("user_1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.LockOwner(context.Background(), "user_1"); err != nil {
		t.Fatalf("LockOwner error: %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+decks\s+SET\s+name\s*=\s*\$3,\s*description\s*=\s*\$4,\s*last_updated\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WithArgs("d-1", "user_1", "Biology II", "updated notes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), "d-1", "user_1", "Biology II", "updated notes"); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_WrongOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+decks\s+SET\s+name`).
		WithArgs("d-1", "intruder", "Biology II", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "d-1", "intruder", "Biology II", "")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestTouchLastUpdated_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+decks\s+SET\s+last_updated`).
		WithArgs("ghost", "user_1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TouchLastUpdated(context.Background(), "ghost", "user_1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+decks`).
		WithArgs("d-1", "user_1").
		WillReturnError(errors.New("db down"))

	err := repo.Delete(context.Background(), "d-1", "user_1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
