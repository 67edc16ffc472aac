package cleanup_test

import (
	"context"
	"testing"
	"time"

	"beadshop/internal/cleanup"
	"beadshop/internal/migrate"
	"beadshop/internal/models"
	"beadshop/internal/repository"
	"beadshop/internal/testutil"

	"go.uber.org/zap"
)

func setupRepos(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	opts := migrate.DefaultMigrateOptions()
	// без триггера updated_at, чтобы тест мог состарить корзины напрямую
	opts.CreateUpdatedAtTrigger = false
	if err := migrate.MigrateShopDB(context.Background(), db, zap.NewNop(), opts); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.New(db)
}

func TestCleanupOldSessions(t *testing.T) {
	repos := setupRepos(t)
	svc := cleanup.NewCleanupService(repos, zap.NewNop())
	ctx := context.Background()

	stale := &models.Session{}
	fresh := &models.Session{}
	for _, s := range []*models.Session{stale, fresh} {
		if err := repos.Sessions.Create(ctx, s); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}
	if err := repos.Sessions.Touch(ctx, stale.ID, time.Now().Add(-40*24*time.Hour)); err != nil {
		t.Fatalf("backdate session: %v", err)
	}

	cart := &models.Cart{SessionID: &stale.ID, Status: models.CartStatusNew}
	if err := repos.Carts.Create(ctx, cart); err != nil {
		t.Fatalf("create cart: %v", err)
	}

	if err := svc.CleanupOldSessions(ctx); err != nil {
		t.Fatalf("CleanupOldSessions: %v", err)
	}

	if got, _ := repos.Sessions.GetByID(ctx, stale.ID); got != nil {
		t.Fatal("stale session must be deleted")
	}
	if got, _ := repos.Sessions.GetByID(ctx, fresh.ID); got == nil {
		t.Fatal("fresh session must survive")
	}
	// корзина переживает чистку сессий
	if got, _ := repos.Carts.GetByID(ctx, cart.ID); got == nil {
		t.Fatal("cart must survive session cleanup")
	}
}

func TestCleanupAbandonedCarts(t *testing.T) {
	repos := setupRepos(t)
	svc := cleanup.NewCleanupService(repos, zap.NewNop())
	ctx := context.Background()

	abandoned := &models.Cart{Status: models.CartStatusNew}
	active := &models.Cart{Status: models.CartStatusNew}
	ordered := &models.Cart{Status: models.CartStatusOrder}
	for _, c := range []*models.Cart{abandoned, active, ordered} {
		if err := repos.Carts.Create(ctx, c); err != nil {
			t.Fatalf("create cart: %v", err)
		}
	}

	old := time.Now().Add(-40 * 24 * time.Hour)
	if err := repos.DB.Exec("UPDATE carts SET updated_at = ? WHERE id IN (?, ?)",
		old, abandoned.ID, ordered.ID).Error; err != nil {
		t.Fatalf("backdate carts: %v", err)
	}

	if err := svc.CleanupAbandonedCarts(ctx); err != nil {
		t.Fatalf("CleanupAbandonedCarts: %v", err)
	}

	got, _ := repos.Carts.GetByID(ctx, abandoned.ID)
	if got.Status != models.CartStatusOld {
		t.Fatalf("abandoned cart expected OLD got %s", got.Status)
	}
	got, _ = repos.Carts.GetByID(ctx, active.ID)
	if got.Status != models.CartStatusNew {
		t.Fatalf("active cart must stay NEW, got %s", got.Status)
	}
	// закрытые корзины не трогаем, какими бы старыми они ни были
	got, _ = repos.Carts.GetByID(ctx, ordered.ID)
	if got.Status != models.CartStatusOrder {
		t.Fatalf("ordered cart must stay ORDER, got %s", got.Status)
	}
}

func TestSchedulerRunOnceNow(t *testing.T) {
	repos := setupRepos(t)
	svc := cleanup.NewCleanupService(repos, zap.NewNop())
	sched := cleanup.NewScheduler(svc, zap.NewNop())
	ctx := context.Background()

	stale := &models.Session{}
	if err := repos.Sessions.Create(ctx, stale); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := repos.Sessions.Touch(ctx, stale.ID, time.Now().Add(-40*24*time.Hour)); err != nil {
		t.Fatalf("backdate session: %v", err)
	}

	if err := sched.RunOnceNow(ctx); err != nil {
		t.Fatalf("RunOnceNow: %v", err)
	}
	if got, _ := repos.Sessions.GetByID(ctx, stale.ID); got != nil {
		t.Fatal("full cleanup must prune stale sessions")
	}
}
