package handlers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"expense-tracker-go-be/store"
)

const maxReceiptSize = 5 * 1024 * 1024 // 5MB

var receiptContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

var (
	errReceiptNotAllowed = errors.New("only JPEG, PNG, and PDF files are allowed")
	errReceiptTooLarge   = errors.New("receipt file must not exceed 5MB")
)

// saveReceipt stores an uploaded receipt, if any, and returns its path.
// An absent file returns ("", nil). The file is validated by extension,
// declared content type, and size before anything touches the disk.
func (h *Handler) saveReceipt(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("receipt")
	if err != nil {
		return "", nil // no receipt attached
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	expected, ok := receiptContentTypes[ext]
	if !ok {
		return "", errReceiptNotAllowed
	}
	if declared := file.Header.Get(fiber.HeaderContentType); declared != "" && declared != expected {
		return "", errReceiptNotAllowed
	}
	if file.Size > maxReceiptSize {
		return "", errReceiptTooLarge
	}

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(h.Cfg.UploadDir, "receipt-"+uuid.NewString()+ext)
	if err := c.SaveFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

// removeReceipt deletes a receipt file, logging instead of failing the
// request when the file is already gone.
func removeReceipt(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to delete receipt file %s: %v", path, err)
	}
}

func isReceiptValidationErr(err error) bool {
	return errors.Is(err, errReceiptNotAllowed) || errors.Is(err, errReceiptTooLarge)
}

// GetReceipt streams the receipt associated with an expense. Both "no
// association" and "file missing on disk" surface as 404; the distinction is
// only logged.
func (h *Handler) GetReceipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("expenseId"))
	if err != nil {
		return expenseNotFound(c)
	}

	tx, err := h.Store.Transactions.FindByID(userID(c), id)
	if errors.Is(err, store.ErrNotFound) {
		return expenseNotFound(c)
	}
	if err != nil {
		return internalError(c, "Failed to retrieve receipt file")
	}

	if tx.ReceiptPath == "" {
		log.Printf("No receipt associated with expense %s", tx.ID)
		return notFound(c, "No receipt found", "No receipt file is associated with this expense")
	}

	info, err := os.Stat(tx.ReceiptPath)
	if err != nil {
		log.Printf("Receipt file missing on disk for expense %s: %s", tx.ID, tx.ReceiptPath)
		return notFound(c, "No receipt found", "No receipt file is associated with this expense")
	}

	file, err := os.Open(tx.ReceiptPath)
	if err != nil {
		return internalError(c, "Failed to stream the receipt file")
	}

	ext := strings.ToLower(filepath.Ext(tx.ReceiptPath))
	contentType, known := receiptContentTypes[ext]
	if !known {
		contentType = "application/octet-stream"
	}

	disposition := "attachment"
	if known { // images and PDFs are viewable inline
		disposition = "inline"
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("%s; filename=%q", disposition, filepath.Base(tx.ReceiptPath)))
	return c.SendStream(file, int(info.Size()))
}

// expenseNotFound is the shared 404 body for expense-scoped routes.
func expenseNotFound(c *fiber.Ctx) error {
	return notFound(c, "Expense not found", "The requested expense does not exist or you do not have access to it")
}
