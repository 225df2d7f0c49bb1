package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/cmdsuggest/internal/config"
)

// Validate validates a cmdsuggest configuration file
func Validate(configPath string) error {
	if configPath == "" {
		path, err := config.Resolve("")
		if err != nil {
			return err
		}
		if path == "" {
			return fmt.Errorf("no config file found")
		}
		configPath = path
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	// Read file content for schema validation
	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// First validate with JSON Schema
	result, err := config.ValidateWithSchema(configPath, content)
	if err != nil {
		return err
	}

	// If schema validation passes, run the semantic checks
	if result.Valid {
		customResult, err := config.Validate(configPath)
		if err != nil {
			return err
		}
		if !customResult.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, customResult.Errors...)
		}
	}

	if result.Valid {
		fmt.Println("✅ Configuration is valid!")
		return nil
	}

	fmt.Println("❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
