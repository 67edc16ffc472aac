package service_test

import (
	"context"
	"errors"
	"testing"

	"beadshop/internal/migrate"
	"beadshop/internal/models"
	"beadshop/internal/repository"
	"beadshop/internal/service"
	"beadshop/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func setupRepos(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateShopDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.New(db)
}

type notifierMock struct {
	customer []service.OrderCreatedEvent
	admin    []service.OrderCreatedEvent
}

func (n *notifierMock) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	n.customer = append(n.customer, e)
	return nil
}

func (n *notifierMock) PublishAdminOrderAlert(ctx context.Context, e service.OrderCreatedEvent) error {
	n.admin = append(n.admin, e)
	return nil
}

func seedProduct(t *testing.T, repos *repository.Repository, slug string, price, discount int, inStock, reserved bool) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:     "Product " + slug,
		Slug:      slug,
		BasePrice: price,
		Discount:  discount,
		InStock:   inStock,
		Reserved:  reserved,
	}
	if err := repos.Products.Create(context.Background(), p, nil); err != nil {
		t.Fatalf("seed product %s: %v", slug, err)
	}
	return p
}

func seedCartWith(t *testing.T, repos *repository.Repository, products ...*models.Product) *models.Cart {
	t.Helper()
	ctx := context.Background()

	sess := &models.Session{}
	if err := repos.Sessions.Create(ctx, sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	cart := &models.Cart{SessionID: &sess.ID, Status: models.CartStatusNew}
	if err := repos.Carts.Create(ctx, cart); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	for _, p := range products {
		item := &models.CartItem{CartID: cart.ID, ProductID: p.ID, Price: p.Price()}
		if err := repos.CartItems.CreateIfAbsent(ctx, item); err != nil {
			t.Fatalf("seed cart item: %v", err)
		}
	}
	return cart
}

func TestOrderService_Checkout(t *testing.T) {
	repos := setupRepos(t)
	events := &notifierMock{}
	svc := service.NewOrderService(repos, events)
	ctx := context.Background()

	good := seedProduct(t, repos, "good", 1000, 10, true, false)
	held := seedProduct(t, repos, "held", 500, 0, true, true)
	gone := seedProduct(t, repos, "gone", 300, 0, false, false)
	cart := seedCartWith(t, repos, good, held, gone)

	ord, err := svc.Checkout(ctx, cart.ID, service.CheckoutInput{
		Email:         "  Buyer@Example.COM ",
		Country:       "fRANCE",
		Message:       "ship fast please",
		AgreePolicies: true,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if ord.Status != models.OrderStatusReserved {
		t.Fatalf("status expected RESERVED got %s", ord.Status)
	}
	if ord.CustomerEmail != "buyer@example.com" {
		t.Fatalf("email not normalized: %q", ord.CustomerEmail)
	}
	if ord.Country != "France" {
		t.Fatalf("country not normalized: %q", ord.Country)
	}
	if len(ord.Items) != 1 {
		t.Fatalf("only the available product should be sold, got %d items", len(ord.Items))
	}
	if ord.Items[0].ProductID != good.ID || ord.Items[0].Price != 900 {
		t.Fatalf("item mismatch: %+v", ord.Items[0])
	}

	// товар зарезервирован, корзина закрыта
	reloaded, _ := repos.Products.GetByID(ctx, good.ID)
	if !reloaded.Reserved {
		t.Fatal("sold product must be reserved")
	}
	closedCart, _ := repos.Carts.GetByID(ctx, cart.ID)
	if closedCart.Status != models.CartStatusOrder {
		t.Fatalf("cart status expected ORDER got %s", closedCart.Status)
	}

	if len(events.customer) != 1 || len(events.admin) != 1 {
		t.Fatalf("expected one customer and one admin email, got %d/%d",
			len(events.customer), len(events.admin))
	}
	if events.customer[0].Total != 900 {
		t.Fatalf("event total expected 900 got %d", events.customer[0].Total)
	}
}

func TestOrderService_Checkout_Rejections(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, &notifierMock{})
	ctx := context.Background()

	held := seedProduct(t, repos, "held-only", 500, 0, true, true)
	cart := seedCartWith(t, repos, held)

	in := service.CheckoutInput{Email: "a@b.c", Country: "spain", AgreePolicies: true}

	// без согласия с политиками — отказ до любых проверок
	noAgree := in
	noAgree.AgreePolicies = false
	if _, err := svc.Checkout(ctx, cart.ID, noAgree); !errors.Is(err, service.ErrPoliciesNotAccepted) {
		t.Fatalf("expected ErrPoliciesNotAccepted got %v", err)
	}

	// ни одной доступной позиции
	if _, err := svc.Checkout(ctx, cart.ID, in); !errors.Is(err, service.ErrNothingToSell) {
		t.Fatalf("expected ErrNothingToSell got %v", err)
	}

	// успешный заказ закрывает корзину, повторный checkout невозможен
	good := seedProduct(t, repos, "good-2", 100, 0, true, false)
	cart2 := seedCartWith(t, repos, good)
	if _, err := svc.Checkout(ctx, cart2.ID, in); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if _, err := svc.Checkout(ctx, cart2.ID, in); !errors.Is(err, service.ErrCartNotNew) {
		t.Fatalf("expected ErrCartNotNew got %v", err)
	}

	if _, err := svc.Checkout(ctx, uuid.New(), in); !errors.Is(err, service.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound got %v", err)
	}
}

func TestOrderService_Transitions(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, &notifierMock{})
	ctx := context.Background()

	good := seedProduct(t, repos, "bead-x", 400, 0, true, false)
	cart := seedCartWith(t, repos, good)

	ord, err := svc.Checkout(ctx, cart.ID, service.CheckoutInput{
		Email: "x@y.z", Country: "italy", AgreePolicies: true,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	got, err := svc.Progress(ctx, ord.ID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if got.Status != models.OrderStatusWIP {
		t.Fatalf("status expected WIP got %s", got.Status)
	}
	p, _ := repos.Products.GetByID(ctx, good.ID)
	if !p.Reserved || !p.InStock {
		t.Fatalf("WIP keeps the product reserved and in stock: %+v", p)
	}

	got, err = svc.Complete(ctx, ord.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got.Status != models.OrderStatusCompleted {
		t.Fatalf("status expected COMPLETED got %s", got.Status)
	}
	p, _ = repos.Products.GetByID(ctx, good.ID)
	if p.Reserved || p.InStock {
		t.Fatalf("COMPLETED takes the product off stock: %+v", p)
	}

	// машина нарочно без охраны: отмена выполненного заказа проходит,
	// но товар на склад не возвращает
	got, err = svc.Cancel(ctx, ord.ID)
	if err != nil {
		t.Fatalf("Cancel after Complete: %v", err)
	}
	if got.Status != models.OrderStatusCanceled {
		t.Fatalf("status expected CANCELED got %s", got.Status)
	}
	p, _ = repos.Products.GetByID(ctx, good.ID)
	if p.Reserved || p.InStock {
		t.Fatalf("CANCELED must not restock: %+v", p)
	}
}

func TestOrderService_BulkCancel_PartialFailure(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, &notifierMock{})
	ctx := context.Background()

	good := seedProduct(t, repos, "bead-y", 250, 0, true, false)
	cart := seedCartWith(t, repos, good)
	ord, err := svc.Checkout(ctx, cart.ID, service.CheckoutInput{
		Email: "x@y.z", Country: "japan", AgreePolicies: true,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	bogus := uuid.New()
	res := svc.BulkCancel(ctx, []uuid.UUID{ord.ID, bogus})

	if len(res.Applied) != 1 || res.Applied[0] != ord.ID {
		t.Fatalf("applied mismatch: %+v", res.Applied)
	}
	if err, ok := res.Failed[bogus]; !ok || !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("bogus id must fail with ErrOrderNotFound: %+v", res.Failed)
	}

	// отказ по одному заказу не откатывает остальные
	p, _ := repos.Products.GetByID(ctx, good.ID)
	if p.Reserved {
		t.Fatal("cancel must release the reservation")
	}
}

func TestOrderService_TutorialsNeverReserved(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, &notifierMock{})
	ctx := context.Background()

	tut, err := repos.Categories.GetBySlug(ctx, models.CategorySlugTutorials)
	if err != nil || tut == nil {
		t.Fatalf("tutorials category must be seeded by migration: %v %v", tut, err)
	}

	lesson := &models.Product{Title: "Beading 101", Slug: "beading-101", BasePrice: 50, InStock: true}
	if err := repos.Products.Create(ctx, lesson, []uuid.UUID{tut.ID}); err != nil {
		t.Fatalf("create tutorial product: %v", err)
	}
	cart := seedCartWith(t, repos, lesson)

	ord, err := svc.Checkout(ctx, cart.ID, service.CheckoutInput{
		Email: "x@y.z", Country: "usa", AgreePolicies: true,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if ord.Status != models.OrderStatusReserved {
		t.Fatalf("order itself is reserved as usual, got %s", ord.Status)
	}

	// сам товар из tutorials остаётся доступным, его можно продать ещё раз
	p, _ := repos.Products.GetByID(ctx, lesson.ID)
	if p.Reserved {
		t.Fatal("tutorials products must never be reserved")
	}
}
