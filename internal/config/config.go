// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the PostgreSQL connection string, used when
	// StoreBackend is "postgres".
	DatabaseDSN string

	// StoreBackend selects the persistence backend: "postgres" or
	// "document".
	StoreBackend string

	// DataDir is the directory holding the document backend's
	// collection files, used when StoreBackend is "document".
	DataDir string

	// BooksAPIURL is the base URL of the external book catalog.
	BooksAPIURL string

	// SecureCookies marks session cookies as Secure (HTTPS only).
	SecureCookies bool

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.StoreBackend, "s", "postgres", "store backend: postgres or document")
	flag.StringVar(&options.DataDir, "data", "data", "directory for document store collections")
	flag.StringVar(&options.BooksAPIURL, "books", "https://www.googleapis.com/books/v1/volumes", "book catalog base URL")
	flag.BoolVar(&options.SecureCookies, "secure", false, "mark session cookies as Secure")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		options.StoreBackend = backend
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		options.DataDir = dir
	}
	if booksURL := os.Getenv("BOOKS_API_URL"); booksURL != "" {
		options.BooksAPIURL = booksURL
	}

	return options
}
