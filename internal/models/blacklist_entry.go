package models

// NoRemark is stored when a blacklist entry is added without an annotation.
const NoRemark = "no remark"

// BlacklistEntry is an IP whose visits are rejected before persistence.
// blocked_ip carries a unique index; a racing duplicate insert is mapped to
// the already-exists outcome at the store layer.
type BlacklistEntry struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	BlockedIP string `json:"blockedIp" gorm:"column:blocked_ip;uniqueIndex"`
	AddTime   string `json:"addTime" gorm:"column:add_time"` // civil time, YYYY-MM-DD HH:MM:SS
	Remark    string `json:"remark"`
}
