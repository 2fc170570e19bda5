package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the tables in dependency order.  Every statement is
// idempotent so Migrate can run on each start.  product, reservation and
// saleitem carry no foreign keys; deletes follow the configured policies.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS vendor (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT,
		owner VARCHAR(255) NOT NULL DEFAULT '',
		logo VARCHAR(1024) NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS vendor_auth (
		id INT AUTO_INCREMENT PRIMARY KEY,
		vendor_id INT NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (vendor_id) REFERENCES vendor(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS product (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		count INT NOT NULL DEFAULT 0,
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		vid INT NOT NULL,
		INDEX idx_product_vid (vid)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS sale (
		id INT AUTO_INCREMENT PRIMARY KEY,
		date DATETIME NOT NULL,
		discount DECIMAL(5,2) NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS saleitem (
		sid INT NOT NULL,
		pid INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		PRIMARY KEY (sid, pid),
		INDEX idx_saleitem_pid (pid)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS booth (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL DEFAULT '',
		location VARCHAR(255) NOT NULL DEFAULT '',
		size VARCHAR(64) NOT NULL DEFAULT ''
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reservation (
		id INT AUTO_INCREMENT PRIMARY KEY,
		vid INT NOT NULL,
		bid INT NOT NULL,
		date DATETIME NOT NULL,
		duration INT NOT NULL,
		INDEX idx_reservation_bid_date (bid, date),
		INDEX idx_reservation_vid_date (vid, date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing table.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
