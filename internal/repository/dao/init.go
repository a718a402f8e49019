package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&College{},
		&Student{},
		&AdminUser{},
		&Event{},
		&EventRegistration{},
		&Attendance{},
		&Feedback{},
	)
}
