package models

import "gorm.io/gorm"

type ForumPost struct {
	gorm.Model
	UserID   uint
	UserName string
	Title    string
	Text     string
	Replies  []ForumReply `gorm:"foreignKey:PostID"`
}

type ForumReply struct {
	gorm.Model
	PostID   uint
	UserID   uint
	UserName string
	Text     string
}

type PostReport struct {
	gorm.Model
	PostID     uint
	ReportedBy uint
	Reason     string
	Status     string // "pending", "reviewed", "resolved"
}
