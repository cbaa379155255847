// File: internal/service/authorization.go
package service

import "blog/internal/model"

// AdminID 唯一可以新增、編輯、刪除文章的使用者
const AdminID = 1

// IsAdmin 判斷使用者是否為管理員；nil 代表未登入
func IsAdmin(user *model.User) bool {
	return user != nil && user.ID == AdminID
}
