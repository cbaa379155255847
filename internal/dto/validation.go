// File: internal/dto/validation.go
package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// 表單欄位顯示名稱
var fieldLabels = map[string]string{
	"Email":    "Email",
	"Password": "Password",
	"Name":     "Name",
	"Title":    "Blog Post Title",
	"Subtitle": "Subtitle",
	"ImgURL":   "Blog Image URL",
	"Body":     "Blog Content",
	"Text":     "Comment",
}

// ValidationMessages 把 validator 的錯誤轉成可直接顯示在表單上的訊息
func ValidationMessages(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid form submission."}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required.", label))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address.", label))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL.", label))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters.", label, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid.", label))
		}
	}
	return msgs
}
