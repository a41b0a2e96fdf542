package models

import (
	"time"

	"gorm.io/datatypes"
)

// NodeModel persists the proxy server entities. Config is kept opaque
// (spec.md §9) — protocol-specific decoding happens in the domain layer via
// node.Node.DecodeProtocolConfig.
type NodeModel struct {
	ID             uint           `gorm:"primarykey"`
	Name           string         `gorm:"not null;size:100"`
	Host           string         `gorm:"not null;size:255"`
	Port           int            `gorm:"not null"`
	Protocol       string         `gorm:"not null;size:20;index"`
	Secret         string         `gorm:"not null;size:255"`
	Config         datatypes.JSON `gorm:"column:config"`
	Status         string         `gorm:"not null;default:offline;size:20;index"`
	MaxUsers       int            `gorm:"not null;default:0"`
	CurrentUsers   int            `gorm:"not null;default:0"`
	TotalUpload    uint64         `gorm:"not null;default:0"`
	TotalDownload  uint64         `gorm:"not null;default:0"`
	LastHeartbeat  *time.Time
	IncludeInClash bool `gorm:"not null;default:true;index"`
	SortOrder      int  `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (NodeModel) TableName() string { return TableNodes }
