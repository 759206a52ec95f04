package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int64              `json:"id"`
	UserID      pgtype.Int8        `json:"user_id"`
	SessionID   pgtype.Text        `json:"session_id"`
	Email       string             `json:"email"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	PhoneNumber string             `json:"phone_number"`
	Street      string             `json:"street"`
	HouseNumber string             `json:"house_number"`
	City        string             `json:"city"`
	ZipCode     string             `json:"zip_code"`
	Country     string             `json:"country"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      string             `json:"status"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	LineNo    int32           `json:"line_no"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int32           `json:"quantity"`
}

type OutboxEvent struct {
	ID          int64              `json:"id"`
	EventID     uuid.UUID          `json:"event_id"`
	AggregateID string             `json:"aggregate_id"`
	Topic       string             `json:"topic"`
	EventType   string             `json:"event_type"`
	Payload     []byte             `json:"payload"`
	Headers     []byte             `json:"headers"`
	Status      string             `json:"status"`
	Attempts    int32              `json:"attempts"`
	LastError   pgtype.Text        `json:"last_error"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	SentAt      pgtype.Timestamptz `json:"sent_at"`
}

type Stock struct {
	ProductID         int64              `json:"product_id"`
	AvailableQuantity int32              `json:"available_quantity"`
	ReservedQuantity  int32              `json:"reserved_quantity"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
}

type StockReservation struct {
	OrderID   int64              `json:"order_id"`
	Items     []byte             `json:"items"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
