package database

import (
	"fmt"
	"testing"
	"time"

	"bankledger/internal/config"
	"bankledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         config.DriverSQLite,
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestCategory(t *testing.T, db *DB, id, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		ID:           id,
		Name:         name,
		CategoryType: models.CategoryTypeTransaction,
		TaxType:      models.TaxTypeGST,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

func CreateTestAccount(t *testing.T, db *DB, id, name string) *models.BankAccount {
	t.Helper()

	category := &models.Category{
		ID:            id,
		Name:          name,
		CategoryType:  models.CategoryTypeTransaction,
		TaxType:       models.TaxTypeNone,
		IsBankAccount: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create account category: %v", err)
	}

	account := &models.BankAccount{
		ID:            id,
		Name:          name,
		AccountNumber: "12345678",
		BSB:           "063-000",
		BankName:      "Test Bank",
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

func CreateTestTransaction(t *testing.T, db *DB, accountID string, date time.Time, description string, signedAmount decimal.Decimal) *models.Transaction {
	t.Helper()

	withdrawal, deposit := models.SplitSignedAmount(signedAmount)
	txn := &models.Transaction{
		Date:        date,
		AccountID:   accountID,
		Description: description,
		Withdrawal:  withdrawal,
		Deposit:     deposit,
	}

	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}

	return txn
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"categorization_rule_conditions",
		"categorization_rules",
		"transactions",
		"bank_accounts",
		"categories",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
