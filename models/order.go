package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderChannel represents the sales channel an order came through
type OrderChannel string

const (
	ChannelDTCWeb      OrderChannel = "DTC Web"
	ChannelDTCStore    OrderChannel = "DTC Store"
	ChannelB2BTomJames OrderChannel = "B2B Tom James"
	ChannelB2BOther    OrderChannel = "B2B Other"
	ChannelTrunkShow   OrderChannel = "Trunk Show"
)

// PipelineStage is one occupancy record of an order in a production
// stage. Records are append-only: a stage is closed by setting ExitedAt,
// never by deleting or rewriting the row. For any order at most one row
// has a null ExitedAt, and that row's stage matches the order's status.
type PipelineStage struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	OrderID   string      `gorm:"not null;index" json:"order_id"`
	Stage     OrderStatus `gorm:"not null" json:"stage"`
	EnteredAt time.Time   `gorm:"not null" json:"entered_at"`
	ExitedAt  *time.Time  `json:"exited_at"`
	Artisan   *string     `json:"artisan"`
	Notes     *string     `json:"notes"`
}

// TableName specifies the table name for the PipelineStage model
func (PipelineStage) TableName() string {
	return "pipeline_stages"
}

// BeforeCreate assigns a UUID primary key when none is set
func (s *PipelineStage) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Order represents a bespoke garment order moving through the
// production pipeline
type Order struct {
	ID                   string          `gorm:"primaryKey" json:"id"`
	CustomerID           string          `gorm:"not null;index" json:"customer_id"`
	MeasurementProfileID string          `gorm:"not null" json:"measurement_profile_id"`
	Channel              OrderChannel    `gorm:"not null" json:"channel"`
	Status               OrderStatus     `gorm:"not null;default:'Order Received'" json:"status"`
	ProductID            string          `gorm:"not null;index" json:"product_id"`
	FabricRollID         *string         `gorm:"index" json:"fabric_roll_id"`
	Quantity             int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice            float64         `gorm:"not null" json:"unit_price"`
	TotalPrice           float64         `gorm:"not null" json:"total_price"`
	YardageUsed          *float64        `json:"yardage_used"` // set when fabric is consumed at Cutting
	ThreadColor          string          `json:"thread_color"`
	Monogram             *string         `json:"monogram"`
	MonogramStyle        *string         `json:"monogram_style"`
	PocketStyle          string          `json:"pocket_style"`
	Hardware             string          `json:"hardware"`
	AssignedArtisan      *string         `gorm:"index" json:"assigned_artisan"`
	PipelineStages       []PipelineStage `gorm:"foreignKey:OrderID" json:"pipeline_stages"`
	PartnerID            *string         `gorm:"index" json:"partner_id"`
	PartnerRepID         *string         `json:"partner_rep_id"`
	PartnerOrderRef      *string         `json:"partner_order_ref"`
	SketchS3Key          *string         `json:"sketch_s3_key"`                 // nullable, S3 key for the design sketch
	SketchURL            *string         `gorm:"-" json:"sketch_url,omitempty"` // computed field, presigned URL for the sketch
	OrderDate            time.Time       `gorm:"not null;index" json:"order_date"`
	PromisedDate         time.Time       `gorm:"not null" json:"promised_date"`
	CompletedDate        *time.Time      `json:"completed_date"` // set exactly once, on entry into Shipped
	ShipmentID           *string         `json:"shipment_id"`
	OrderNote            *string         `json:"order_note"`
	GiftNote             *string         `json:"gift_note"`
	GiftRecipient        *string         `json:"gift_recipient"`
	GiftSender           *string         `json:"gift_sender"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID primary key when none is set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
