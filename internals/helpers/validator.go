package helper

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct menjalankan validator.v10 pada request DTO.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// ValidationErrorMap mengubah validator.ValidationErrors jadi map field → pesan tag.
func ValidationErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fe.Tag())
	}
	return out
}
