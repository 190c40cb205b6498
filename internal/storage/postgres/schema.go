package postgres

// PharmacySchema creates the catalog, stock and order tables of one pharmacy.
var PharmacySchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
            code TEXT PRIMARY KEY CHECK (code ~ '^[0-9]{11}$'),
            description TEXT NOT NULL DEFAULT '',
            generic_name TEXT NOT NULL DEFAULT '',
            manufacturer TEXT NOT NULL DEFAULT '',
            selling_size DOUBLE PRECISION,
            price NUMERIC(14,4) NOT NULL DEFAULT 0,
            stock BIGINT NOT NULL DEFAULT 0 CHECK (stock >= 0),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            tenant TEXT NOT NULL,
            confirmed_at TIMESTAMPTZ NOT NULL,
            items JSONB NOT NULL,
            subtotal NUMERIC(14,2) NOT NULL,
            discount_pct NUMERIC NOT NULL,
            discount NUMERIC(14,2) NOT NULL,
            total NUMERIC(14,2) NOT NULL,
            external_order_id TEXT,
            client_id TEXT
        )`,
	`CREATE INDEX IF NOT EXISTS idx_products_updated ON products(updated_at)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_confirmed ON orders(confirmed_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_client ON orders(client_id, confirmed_at DESC)`,
}

// OrchestratorSchema creates the network-wide order record table.
var OrchestratorSchema = []string{
	`CREATE TABLE IF NOT EXISTS order_records (
            external_order_id TEXT PRIMARY KEY,
            pharmacy_order_id TEXT NOT NULL,
            pharmacy_id TEXT NOT NULL,
            client_id TEXT,
            discount_pct NUMERIC NOT NULL,
            items JSONB NOT NULL,
            subtotal NUMERIC(14,2) NOT NULL,
            discount NUMERIC(14,2) NOT NULL,
            total NUMERIC(14,2) NOT NULL,
            confirmed_at TIMESTAMPTZ NOT NULL,
            source TEXT NOT NULL
        )`,
	`CREATE INDEX IF NOT EXISTS idx_order_records_pharmacy ON order_records(pharmacy_id, confirmed_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_order_records_client ON order_records(client_id, confirmed_at DESC)`,
}
