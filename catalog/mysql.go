package catalog

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"storefront-service/models"

	_ "github.com/go-sql-driver/mysql"
)

// loadFromMySQL 启动时从 products 表读取一次产品目录，之后不再查询
func loadFromMySQL(dsn string) (*Catalog, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.Printf("Error closing catalog database: %v", err)
		}
	}(db)

	db.SetConnMaxLifetime(time.Minute)

	rows, err := db.Query(`
		SELECT id, name, price, category, subcategory, image_url, availability, unit, description
		FROM products
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("Error closing rows: %v", err)
		}
	}(rows)

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Subcategory,
			&p.ImageURL, &p.Availability, &p.Unit, &p.Description); err != nil {
			log.Printf("Error scanning product row: %v", err)
			continue
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}

	return newCatalog(products), nil
}
