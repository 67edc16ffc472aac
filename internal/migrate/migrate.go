package migrate

import (
	"context"

	"beadshop/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // CHECK-constraint для целостности
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
	SeedFixedCategories    bool // служебные категории tutorials и sale
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateUpdatedAtTrigger: true,
		SeedFixedCategories:    true,
	}
}

func MigrateShopDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")

	if opt.CreateExtensions {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
	}

	log.Info("Создание таблиц каталога и заказов")
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Session{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_carts_updated ON carts;
CREATE TRIGGER trg_carts_updated
BEFORE UPDATE ON carts
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("Не удалось создать триггеры updated_at", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// CREATED — исторический стартовый статус, оставлен в списке намеренно
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('CREATED','NEW','WIP','COMPLETED','CANCELED','RESERVED'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов заказа", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE carts
  DROP CONSTRAINT IF EXISTS chk_carts_status_allowed;
ALTER TABLE carts
  ADD CONSTRAINT chk_carts_status_allowed
  CHECK (status IN ('NEW','OLD','ORDER'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов корзины", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_discount_range;
ALTER TABLE products
  ADD CONSTRAINT chk_products_discount_range
  CHECK (discount >= 0 AND discount <= 100);
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_base_price_non_negative;
ALTER TABLE products
  ADD CONSTRAINT chk_products_base_price_non_negative
  CHECK (base_price >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для цен", zap.Error(err))
			return err
		}
	}

	if opt.SeedFixedCategories {
		log.Info("Создание служебных категорий")
		// sale невидима в дереве: наполняется не членством, а скидкой
		if err := db.Exec(`
INSERT INTO categories (title, slug, view_priority, visibility, show_at_header)
VALUES
  ('Tutorials', 'tutorials', 2000, true, true),
  ('Sale', 'sale', 1, true, false)
ON CONFLICT (slug) DO NOTHING;
`).Error; err != nil {
			log.Error("Не удалось создать служебные категории", zap.Error(err))
			return err
		}
	}

	log.Info("Миграция базы данных магазина завершена")
	return nil
}
