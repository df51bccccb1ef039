package models

import "time"

// Registration is a sign-up request waiting for an admin decision
type Registration struct {
	ID            uint      `gorm:"column:registration_id;primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email         string    `gorm:"column:email;type:varchar(150);not null" json:"email"`
	Organization  string    `gorm:"column:organization;type:varchar(150)" json:"organization"`
	Role          string    `gorm:"column:role;type:varchar(20);not null" json:"role"`
	WalletAddress string    `gorm:"column:wallet_address;type:varchar(66)" json:"walletAddress,omitempty"`
	RequestDate   string    `gorm:"column:request_date;type:varchar(10);not null" json:"requestDate"`
	Status        string    `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

// Activity is one entry of the admin transaction ledger
type Activity struct {
	ID        uint      `gorm:"column:activity_id;primaryKey;autoIncrement" json:"id"`
	Type      string    `gorm:"column:type;type:varchar(50);not null" json:"type"`
	User      string    `gorm:"column:user_name;type:varchar(100);not null" json:"user"`
	Product   string    `gorm:"column:product;type:varchar(100)" json:"product"`
	BatchID   string    `gorm:"column:batch_id;type:varchar(50);index" json:"batchId"`
	Timestamp time.Time `gorm:"column:occurred_at;not null" json:"timestamp"`
	Status    string    `gorm:"column:status;type:varchar(20);default:'Confirmed'" json:"status"`
}
