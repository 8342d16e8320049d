package user

import (
	"context"
	"testing"

	"github.com/yungbote/neurotutor-backend/internal/data/repos/testutil"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	name := testutil.Username("userrepo")
	created, err := repo.Create(dbc, []*types.User{{Username: name, Password: "pw", LearningGoals: "pass the exam"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == 0 {
		t.Fatalf("Create: unexpected result: %+v", created)
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uint{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].Username != name {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	got, err := repo.GetByUsername(dbc, name)
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got == nil || got.ID != created[0].ID || got.LearningGoals != "pass the exam" {
		t.Fatalf("GetByUsername: unexpected result: %+v", got)
	}

	missing, err := repo.GetByUsername(dbc, "does-not-exist")
	if err != nil {
		t.Fatalf("GetByUsername (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByUsername (missing): expected nil, got %+v", missing)
	}

	exists, err := repo.UsernameExists(dbc, name)
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !exists {
		t.Fatalf("UsernameExists: expected true")
	}

	if _, err := repo.Create(dbc, []*types.User{{Username: name, Password: "pw"}}); err == nil {
		t.Fatalf("Create duplicate username: expected error")
	}
}
