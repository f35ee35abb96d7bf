package model

import "gorm.io/gorm"

// AutoMigrate 按依赖顺序建表，外键级联删除由数据库保证
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{}, &FollowerSnapshot{}, &Post{}, &Engagement{})
}
