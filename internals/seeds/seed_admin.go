package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"acaraku_backend/internals/configs"
	authModel "acaraku_backend/internals/features/users/auth/model"
)

// SeedAdminUser membuat admin pertama kalau tabel masih kosong.
// Kredensial dari ENV (ADMIN_USERNAME / ADMIN_PASSWORD); tanpa password
// di ENV, seeding dilewati — jangan pernah hardcode default.
func SeedAdminUser(db *gorm.DB) {
	var count int64
	if err := db.Model(&authModel.AdminUserModel{}).Count(&count).Error; err != nil {
		log.Printf("❌ Gagal cek admin_users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	username := configs.GetEnv("ADMIN_USERNAME", "admin")
	password := configs.GetEnv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ℹ️ ADMIN_PASSWORD kosong, seeding admin dilewati.")
		return
	}

	// 🔐 Hash password sebelum disimpan
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Gagal hash password admin: %v", err)
		return
	}

	admin := authModel.AdminUserModel{
		Username:     username,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("❌ Gagal seed admin '%s': %v", username, err)
		return
	}
	log.Printf("✅ Admin '%s' berhasil dibuat.", username)
}
