package models

// Sentinel values stored when a field cannot be determined at record time.
const (
	UnknownRegion = "unknown"
	UnknownDevice = "unknown device"
)

// Visit is one recorded, non-blocked access event. Rows are append-only and
// only ever removed in bulk by the admin reset.
type Visit struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	VisitorIP string `json:"visitorIp" gorm:"column:visitor_ip;index"`
	Region    string `json:"region" gorm:"default:'unknown'"`
	VisitTime string `json:"visitTime" gorm:"column:visit_time;index"` // civil time, YYYY-MM-DD HH:MM:SS
	UserAgent string `json:"userAgent"`
	IsValid   bool   `json:"-" gorm:"column:is_valid;default:true"`
}
