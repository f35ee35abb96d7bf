package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrDuplicateKey 唯一索引冲突
var ErrDuplicateKey = errors.New("duplicate key")

const mysqlDuplicateEntry = 1062

// translateDuplicate 将各驱动的唯一约束冲突统一为 ErrDuplicateKey
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return ErrDuplicateKey
	}
	return err
}
