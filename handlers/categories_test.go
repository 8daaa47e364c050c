package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCategory(t *testing.T, app *fiber.App, token, name, categoryType string) string {
	t.Helper()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/categories", token, fiber.Map{
		"name": name,
		"type": categoryType,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "create category failed: %v", body)
	return body["category"].(map[string]interface{})["id"].(string)
}

func TestCategoryLifecycle(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := signup(t, app, "alice@example.com")

	id := createCategory(t, app, token, "Groceries", "expense")

	// Type defaults to expense.
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/categories", token, fiber.Map{"name": "Misc"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "expense", body["category"].(map[string]interface{})["type"])

	// Rename.
	resp, body = doJSON(t, app, fiber.MethodPut, "/api/categories/"+id, token, fiber.Map{"name": "Food"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Food", body["category"].(map[string]interface{})["name"])

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/categories", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2.0, body["total"])

	// Delete.
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/categories/"+id, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/categories/"+id, token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCategoryDuplicateName(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := signup(t, app, "alice@example.com")

	createCategory(t, app, token, "Groceries", "expense")

	// Duplicates are rejected case-insensitively.
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/categories", token, fiber.Map{"name": "groceries"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Category already exists", body["error"])

	// A different user is free to reuse the name.
	other := signup(t, app, "bob@example.com")
	createCategory(t, app, other, "Groceries", "expense")
}

func TestCategoryDeleteInUse(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := signup(t, app, "alice@example.com")

	id := createCategory(t, app, token, "Groceries", "expense")

	resp, _ := doForm(t, app, fiber.MethodPost, "/api/expenses", token, map[string]string{
		"amount":     "10",
		"date":       "2025-08-05",
		"categoryId": id,
	}, "", nil, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodDelete, "/api/categories/"+id, token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Category in use", body["error"])
}

func TestCategoryCrossUserAttachment(t *testing.T) {
	app, _, _ := newTestApp(t)
	alice := signup(t, app, "alice@example.com")
	bob := signup(t, app, "bob@example.com")

	id := createCategory(t, app, alice, "Groceries", "expense")

	// Bob cannot attach an expense to Alice's category.
	resp, body := doForm(t, app, fiber.MethodPost, "/api/expenses", bob, map[string]string{
		"amount":     "10",
		"date":       "2025-08-05",
		"categoryId": id,
	}, "", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid category", body["error"])
}
