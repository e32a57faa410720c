// Package main implements a standalone seed script that populates the store
// database with realistic test data: users, categories, products with derived
// special prices, and addresses. It talks straight to PostgreSQL so it can
// run before the API server is up.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "store"),
		getEnv("POSTGRES_PASSWORD", "store_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB_NAME", "store_db"),
		getEnv("POSTGRES_SSL_MODE", "disable"),
	)
}

var categories = []string{
	"Electronics", "Books", "Clothing", "Home & Kitchen", "Sports", "Toys",
}

type productSeed struct {
	name        string
	description string
	quantity    int
	price       float64
	discount    float64
}

var productsByCategory = map[string][]productSeed{
	"Electronics": {
		{"Noise Cancelling Headphones", "Over-ear wireless headphones with 30h battery", 25, 199.99, 10},
		{"4K Action Camera", "Waterproof action camera with image stabilization", 40, 249.00, 15},
		{"Mechanical Keyboard", "Tenkeyless keyboard with hot-swappable switches", 60, 89.50, 0},
	},
	"Books": {
		{"The Pragmatic Programmer", "20th anniversary edition", 100, 39.99, 5},
		{"Designing Data-Intensive Applications", "Ideas behind reliable, scalable systems", 80, 44.99, 0},
	},
	"Clothing": {
		{"Merino Wool Sweater", "Midweight crew neck sweater", 120, 74.00, 20},
		{"Running Jacket", "Lightweight water-resistant shell", 90, 59.95, 10},
	},
	"Home & Kitchen": {
		{"Cast Iron Skillet", "Pre-seasoned 12 inch skillet", 70, 34.90, 0},
		{"Pour-Over Coffee Kit", "Glass carafe with stainless filter", 55, 42.00, 25},
	},
	"Sports": {
		{"Yoga Mat", "Non-slip 6mm mat with carry strap", 150, 29.99, 0},
	},
	"Toys": {
		{"Wooden Building Blocks", "100-piece set in a canvas bag", 200, 24.50, 5},
	},
}

type userSeed struct {
	email     string
	firstName string
	lastName  string
	role      string
}

var users = []userSeed{
	{"admin@store.example.com", "Ada", "Stone", "admin"},
	{"jamie@store.example.com", "Jamie", "Rivera", "user"},
	{"priya@store.example.com", "Priya", "Nair", "user"},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn())
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	userIDs := seedUsers(ctx, pool)
	categoryIDs := seedCategories(ctx, pool)
	seedProducts(ctx, pool, categoryIDs)
	seedAddresses(ctx, pool, userIDs)

	log.Println("seed complete")
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO users (email, first_name, last_name, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
			RETURNING id
		`, u.email, u.firstName, u.lastName, u.role).Scan(&id)
		if err != nil {
			log.Fatalf("seed user %s: %v", u.email, err)
		}
		ids = append(ids, id)
	}
	log.Printf("seeded %d users", len(ids))
	return ids
}

func seedCategories(ctx context.Context, pool *pgxpool.Pool) map[string]int64 {
	ids := make(map[string]int64, len(categories))
	for _, name := range categories {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO categories (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
			RETURNING id
		`, name).Scan(&id)
		if err != nil {
			log.Fatalf("seed category %s: %v", name, err)
		}
		ids[name] = id
	}
	log.Printf("seeded %d categories", len(ids))
	return ids
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, categoryIDs map[string]int64) {
	count := 0
	for categoryName, products := range productsByCategory {
		categoryID, ok := categoryIDs[categoryName]
		if !ok {
			log.Fatalf("unknown category %s", categoryName)
		}
		for _, p := range products {
			specialPrice := p.price - p.price*p.discount/100
			_, err := pool.Exec(ctx, `
				INSERT INTO products (category_id, name, description, image, quantity, price, discount, special_price)
				VALUES ($1, $2, $3, 'default.png', $4, $5, $6, $7)
			`, categoryID, p.name, p.description, p.quantity, p.price, p.discount, specialPrice)
			if err != nil {
				log.Fatalf("seed product %s: %v", p.name, err)
			}
			count++
		}
	}
	log.Printf("seeded %d products", count)
}

func seedAddresses(ctx context.Context, pool *pgxpool.Pool, userIDs []int64) {
	streets := []string{"Maple Avenue", "Harbor Road", "Elm Street", "Lakeview Drive"}
	count := 0
	for i, userID := range userIDs {
		street := fmt.Sprintf("%d %s", 100+rand.Intn(900), streets[i%len(streets)])
		tag, err := pool.Exec(ctx, `
			INSERT INTO addresses (user_id, street, building_name, city, state, country, pincode)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (street) DO NOTHING
		`, userID, street, "Building A", "Springfield", "Illinois", "United States", "627040")
		if err != nil {
			log.Fatalf("seed address for user %d: %v", userID, err)
		}
		if tag.RowsAffected() > 0 {
			_, err = pool.Exec(ctx,
				`UPDATE users SET address_count = address_count + 1, updated_at = NOW() WHERE id = $1`,
				userID)
			if err != nil {
				log.Fatalf("bump address count for user %d: %v", userID, err)
			}
			count++
		}
	}
	log.Printf("seeded %d addresses", count)
}
