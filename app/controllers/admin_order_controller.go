package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pagebound/BookCrate/app/models"
	"github.com/pagebound/BookCrate/app/repository"
	"github.com/pagebound/BookCrate/internal/pkg/mail"
)

// allowedOrderTransitions maps the current order status to the statuses it
// may move to.
var allowedOrderTransitions = map[string][]string{
	models.OrderStatusPending: {models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:    {models.OrderStatusShipped, models.OrderStatusCancelled},
}

func orderTransitionAllowed(from, to string) bool {
	for _, s := range allowedOrderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func HandleAdminListOrders(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	status := c.Query("status")

	repo := repository.GetGlobalRepositories().Order
	orders, err := repo.List(offset, limit, status)
	if err != nil {
		return jsonInternalError(c, "failed to list orders")
	}

	var total int64
	if status != "" {
		total, err = repo.CountByStatus(status)
	} else {
		total, err = repo.Count()
	}
	if err != nil {
		return jsonInternalError(c, "failed to count orders")
	}

	return c.JSON(fiber.Map{
		"orders": orders,
		"total":  total,
	})
}

func HandleAdminGetOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	repos := repository.GetGlobalRepositories()
	order, err := repos.Order.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "order not found")
		}
		return jsonInternalError(c, "failed to load order")
	}

	txs, err := repos.Transaction.GetByOrderID(id)
	if err != nil {
		return jsonInternalError(c, "failed to load transactions")
	}

	return c.JSON(fiber.Map{
		"order":        order,
		"transactions": txs,
	})
}

type createOrderRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	PackageID     uint   `json:"package_id"`
	Quantity      int    `json:"quantity"`
}

// HandleAdminCreateOrder records a manually entered order. The unit price
// is captured from the package at creation time.
func HandleAdminCreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	repos := repository.GetGlobalRepositories()
	pkg, err := repos.Package.GetByID(req.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonBadRequest(c, "package does not exist")
		}
		return jsonInternalError(c, "failed to load package")
	}
	if !pkg.Enabled {
		return jsonBadRequest(c, "package is disabled")
	}

	order := &models.Order{
		Number:        newOrderNumber(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		PackageID:     pkg.ID,
		Quantity:      req.Quantity,
		UnitPrice:     pkg.Price,
		Status:        models.OrderStatusPending,
	}
	if err := order.Validate(); err != nil {
		return jsonBadRequest(c, err.Error())
	}

	if err := repos.Order.Create(order); err != nil {
		return jsonInternalError(c, "failed to create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// newOrderNumber builds a short unique order reference.
func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "BC-" + id[:12]
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// HandleAdminUpdateOrderStatus moves an order along its lifecycle and
// notifies the customer by mail on paid and shipped.
func HandleAdminUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}

	repo := repository.GetGlobalRepositories().Order
	order, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "order not found")
		}
		return jsonInternalError(c, "failed to load order")
	}

	if !orderTransitionAllowed(order.Status, req.Status) {
		return jsonBadRequest(c, fmt.Sprintf("cannot move order from %s to %s", order.Status, req.Status))
	}

	if err := repo.UpdateStatus(id, req.Status); err != nil {
		return jsonInternalError(c, "failed to update order")
	}
	order.Status = req.Status

	notifyOrderStatus(order)

	return c.JSON(order)
}

// notifyOrderStatus sends the customer a mail for statuses they care
// about. Failures are logged, never surfaced.
func notifyOrderStatus(order *models.Order) {
	var subject, body string
	switch order.Status {
	case models.OrderStatusPaid:
		subject = fmt.Sprintf("Order %s confirmed", order.Number)
		body = fmt.Sprintf("Hi %s,\r\n\r\nwe received your payment for order %s. Your book crate is being prepared.\r\n\r\nHappy reading,\r\nthe BookCrate team", order.CustomerName, order.Number)
	case models.OrderStatusShipped:
		subject = fmt.Sprintf("Order %s shipped", order.Number)
		body = fmt.Sprintf("Hi %s,\r\n\r\nyour order %s is on its way.\r\n\r\nHappy reading,\r\nthe BookCrate team", order.CustomerName, order.Number)
	default:
		return
	}

	if err := mail.SendMail(order.CustomerEmail, subject, body); err != nil {
		fiberlog.Errorf("[Order] mail for order %s failed: %v", order.Number, err)
	}
}

type recordTransactionRequest struct {
	ProviderRef string `json:"provider_ref"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// HandleAdminRecordTransaction attaches a provider payment record to an
// order. The provider reference is unique; recording the same reference
// twice is rejected.
func HandleAdminRecordTransaction(c *fiber.Ctx) error {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return jsonBadRequest(c, "invalid id")
	}

	var req recordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonBadRequest(c, "invalid request body")
	}
	if req.ProviderRef == "" {
		return jsonBadRequest(c, "provider_ref is required")
	}
	if req.AmountCents <= 0 {
		return jsonBadRequest(c, "amount_cents must be positive")
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}
	if req.Status == "" {
		req.Status = models.TransactionStatusSucceeded
	}
	switch req.Status {
	case models.TransactionStatusPending, models.TransactionStatusSucceeded,
		models.TransactionStatusFailed, models.TransactionStatusRefunded:
	default:
		return jsonBadRequest(c, "unknown transaction status")
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Order.GetByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonNotFound(c, "order not found")
		}
		return jsonInternalError(c, "failed to load order")
	}

	if _, err := repos.Transaction.GetByProviderRef(req.ProviderRef); err == nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "provider_ref already recorded")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonInternalError(c, "failed to check provider_ref")
	}

	tx := &models.Transaction{
		OrderID:     orderID,
		ProviderRef: req.ProviderRef,
		AmountCents: req.AmountCents,
		Currency:    strings.ToLower(req.Currency),
		Status:      req.Status,
	}
	if err := repos.Transaction.Create(tx); err != nil {
		return jsonInternalError(c, "failed to record transaction")
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func HandleAdminListTransactions(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repo := repository.GetGlobalRepositories().Transaction

	txs, err := repo.List(offset, limit)
	if err != nil {
		return jsonInternalError(c, "failed to list transactions")
	}
	total, err := repo.Count()
	if err != nil {
		return jsonInternalError(c, "failed to count transactions")
	}

	return c.JSON(fiber.Map{
		"transactions": txs,
		"total":        total,
	})
}
