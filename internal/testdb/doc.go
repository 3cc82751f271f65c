// Package testdb provides the database plumbing shared by integration tests:
// opening the test database, applying migrations once, and running each test
// inside a transaction that is always rolled back.
//
// Tests using it are skipped when TENX_TEST_DATABASE_URL is not set.
package testdb
