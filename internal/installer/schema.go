package installer

// SchemaObject is one idempotent schema definition. Objects are applied in
// order, one statement per execution, so a driver that cannot run
// multi-statement batches still works and a failure names the exact object.
type SchemaObject struct {
	Name      string
	Statement string
}

// SchemaObjects is the full schema in dependency order: referenced tables
// come before the tables referencing them.
var SchemaObjects = []SchemaObject{
	{
		Name: "settings",
		Statement: `
			CREATE TABLE IF NOT EXISTS settings (
				setting_key VARCHAR(50) PRIMARY KEY,
				setting_value TEXT
			)`,
	},
	{
		Name: "users",
		Statement: `
			CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				username VARCHAR(50) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		Name: "service_credentials",
		Statement: `
			CREATE TABLE IF NOT EXISTS service_credentials (
				id SERIAL PRIMARY KEY,
				user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				service_name VARCHAR(50) NOT NULL,
				service_user_id VARCHAR(255),
				access_token TEXT NOT NULL,
				refresh_token TEXT,
				expires_at TIMESTAMPTZ,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT unique_user_service UNIQUE (user_id, service_name)
			)`,
	},
	{
		Name: "inventory",
		Statement: `
			CREATE TABLE IF NOT EXISTS inventory (
				id SERIAL PRIMARY KEY,
				item_name VARCHAR(255) NOT NULL,
				sponsor VARCHAR(255),
				image_url VARCHAR(255),
				qty_initial INT NOT NULL DEFAULT 1,
				qty_current INT NOT NULL DEFAULT 1,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT qty_current_bounds CHECK (qty_current >= 0 AND qty_current <= qty_initial)
			)`,
	},
	{
		Name: "campaigns",
		Statement: `
			CREATE TABLE IF NOT EXISTS campaigns (
				id SERIAL PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		Name: "entrants",
		Statement: `
			CREATE TABLE IF NOT EXISTS entrants (
				id SERIAL PRIMARY KEY,
				campaign_id INT NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
				platform VARCHAR(20) NOT NULL CHECK (platform IN ('twitch', 'youtube', 'google_sheet', 'manual')),
				platform_user_id VARCHAR(100),
				display_name VARCHAR(100) NOT NULL,
				source_detail VARCHAR(255),
				is_subscriber BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT unique_entry UNIQUE (campaign_id, platform, platform_user_id)
			)`,
	},
	{
		Name: "winners",
		Statement: `
			CREATE TABLE IF NOT EXISTS winners (
				id SERIAL PRIMARY KEY,
				user_id INT NOT NULL REFERENCES users(id),
				campaign_id INT REFERENCES campaigns(id) ON DELETE SET NULL,
				inventory_id INT REFERENCES inventory(id) ON DELETE SET NULL,
				display_name VARCHAR(100) NOT NULL,
				platform_origin VARCHAR(50) NOT NULL,
				contact_email VARCHAR(255),
				shipping_address TEXT,
				notified BOOLEAN NOT NULL DEFAULT FALSE,
				info_collected BOOLEAN NOT NULL DEFAULT FALSE,
				sent_to_sponsor BOOLEAN NOT NULL DEFAULT FALSE,
				shipped BOOLEAN NOT NULL DEFAULT FALSE,
				notes TEXT,
				won_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
}
