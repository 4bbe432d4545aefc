package models

import "gorm.io/gorm"

// ChatGroup is a group-chat room. RoomID is the identifier handed to the
// external video/chat SDK on the client.
type ChatGroup struct {
	gorm.Model
	Name      string `gorm:"not null"`
	RoomID    string `gorm:"unique;not null"`
	CreatedBy uint
	Members   []GroupMember
}

type GroupMember struct {
	gorm.Model
	ChatGroupID uint `gorm:"uniqueIndex:idx_group_member"`
	UserID      uint `gorm:"uniqueIndex:idx_group_member"`
	Username    string
}
