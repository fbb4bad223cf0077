package i18n

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewTranslations(t *testing.T) {
	t.Run("Should load the built-in catalogs without a locales dir", func(t *testing.T) {
		// act
		trans, err := NewTranslations("en", "")

		// assert
		if err != nil {
			t.Fatalf("NewTranslations() should not return error, got: %v", err)
		}

		if got := trans.GetMessage("summary_title", 0, nil); got != "Repo Summary" {
			t.Errorf("GetMessage() = %q, want %q", got, "Repo Summary")
		}
	})

	t.Run("Should successfully create translations with a locales dir", func(t *testing.T) {
		// arrange
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[HelloWorld]
		other = "¡Hola Mundo!"
		`)

		// act
		trans, err := NewTranslations("es", tmpDir)

		// assert
		if err != nil {
			t.Errorf("NewTranslations() should not return error, got: %v", err)
		}

		if trans == nil {
			t.Fatal("NewTranslations() should not return nil")
		}

		if got := trans.GetMessage("HelloWorld", 0, nil); got != "¡Hola Mundo!" {
			t.Errorf("GetMessage() = %q, want %q", got, "¡Hola Mundo!")
		}
	})

	t.Run("Should fail with empty language", func(t *testing.T) {
		// act
		trans, err := NewTranslations("", t.TempDir())

		// assert
		if err == nil {
			t.Error("NewTranslations() should return error with empty language")
		}

		if trans != nil {
			t.Error("NewTranslations() should return nil when it fails")
		}
	})

	t.Run("Should let external files override built-in messages", func(t *testing.T) {
		// arrange
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.en.toml", `
		[summary_title]
		other = "Overview"`)

		// act
		trans, err := NewTranslations("en", tmpDir)

		// assert
		if err != nil {
			t.Fatalf("NewTranslations() should not return error, got: %v", err)
		}
		if got := trans.GetMessage("summary_title", 0, nil); got != "Overview" {
			t.Errorf("GetMessage() = %q, want %q", got, "Overview")
		}
	})
}

func TestBuiltinCatalogs(t *testing.T) {
	t.Run("Should have the same message IDs in every language", func(t *testing.T) {
		en := readBuiltinIDs(t, "locales/active.en.toml")
		es := readBuiltinIDs(t, "locales/active.es.toml")

		for id := range en {
			if !es[id] {
				t.Errorf("message %q is missing from the spanish catalog", id)
			}
		}
		for id := range es {
			if !en[id] {
				t.Errorf("message %q is missing from the english catalog", id)
			}
		}
	})

	t.Run("Should pluralize counted messages", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatal("Error in test setup:", err)
		}

		one := trans.GetMessage("fetch_failures", 1, map[string]interface{}{"Count": 1})
		many := trans.GetMessage("fetch_failures", 3, map[string]interface{}{"Count": 3})

		if one != "1 file could not be downloaded" {
			t.Errorf("GetMessage() = %q", one)
		}
		if many != "3 files could not be downloaded" {
			t.Errorf("GetMessage() = %q", many)
		}
	})
}

func TestGetMessage(t *testing.T) {
	t.Run("Should get singular message correctly", func(t *testing.T) {
		// arrange
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[Welcome]
		one = "Bienvenido"
		other = "Bienvenidos"`)

		trans, err := NewTranslations("es", tmpDir)
		if err != nil {
			t.Fatal("Error in test setup:", err)
		}

		// act
		result := trans.GetMessage("Welcome", 1, nil)

		// assert
		if result != "Bienvenido" {
			t.Errorf("GetMessage() = %v, want %v", result, "Bienvenido")
		}
	})

	t.Run("Should get plural message correctly", func(t *testing.T) {
		// arrange
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[Welcome]
		one = "Bienvenido"
		other = "Bienvenidos"`)

		trans, err := NewTranslations("es", tmpDir)
		if err != nil {
			t.Fatal("Error in test setup:", err)
		}

		// act
		result := trans.GetMessage("Welcome", 2, nil)

		// assert
		if result != "Bienvenidos" {
			t.Errorf("GetMessage() = %v, want %v", result, "Bienvenidos")
		}
	})

	t.Run("Should handle templates correctly", func(t *testing.T) {
		// arrange
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatal("Error in test setup:", err)
		}

		// act
		result := trans.GetMessage("result_written", 0, map[string]interface{}{
			"Path": "repo_analysis.json",
		})

		// assert
		expected := "Analysis saved to repo_analysis.json"
		if result != expected {
			t.Errorf("GetMessage() = %v, want %v", result, expected)
		}
	})

	t.Run("Should handle missing messages", func(t *testing.T) {
		// arrange
		trans, err := NewTranslations("es", "")
		if err != nil {
			t.Fatal("Error in test setup:", err)
		}

		// act
		result := trans.GetMessage("NonExistent", 1, nil)

		// assert
		expected := "Translation missing: NonExistent"
		if result != expected {
			t.Errorf("GetMessage() = %v, want %v", result, expected)
		}
	})
}

func TestNewTranslations_Errors(t *testing.T) {
	t.Run("Should fail with invalid TOML", func(t *testing.T) {
		// arrange
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[InvalidSection
		this is not valid TOML`)

		// act
		trans, err := NewTranslations("es", tmpDir)

		// assert
		if err == nil {
			t.Fatal("NewTranslations() should fail with an invalid TOML file")
		}
		if trans != nil {
			t.Error("NewTranslations() should return nil when it fails")
		}
		if !strings.HasPrefix(err.Error(), "error loading locale file") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Should ignore a dir without translation files", func(t *testing.T) {
		trans, err := NewTranslations("en", t.TempDir())

		if err != nil {
			t.Errorf("NewTranslations() should not fail, got: %v", err)
		}
		if trans == nil {
			t.Error("NewTranslations() should not return nil")
		}
	})
}

func readBuiltinIDs(t *testing.T, name string) map[string]bool {
	t.Helper()
	data, err := builtinLocales.ReadFile(name)
	if err != nil {
		t.Fatal("Could not read built-in catalog:", err)
	}
	ids := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			ids[strings.Trim(line, "[]")] = true
		}
	}
	return ids
}

func createTestFile(t *testing.T, dir, filename, content string) {
	err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644)
	if err != nil {
		t.Fatal("Could not create test file:", err)
	}
}
