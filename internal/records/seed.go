package records

import "github.com/mmynk/apartmanager/internal/models"

// DefaultVersion is the schema-version stamp the seed data below belongs to.
// Bump it whenever the seed changes; every store holding a different stamp is
// reset to the new seed on its next fee or resident read.
const DefaultVersion = "2025-12-31-v3"

// SeedFees returns a fresh copy of the initial fee collection.
func SeedFees() []models.FeeItem {
	return []models.FeeItem{
		fee("F-A101-102025", "A-101", "Nguyễn Văn An", "10", 2025, 500000, 900000, 250000, 100000, models.StatusPaid, "2025-10-10"),
		fee("F-A101-112025", "A-101", "Nguyễn Văn An", "11", 2025, 500000, 850000, 230000, 100000, models.StatusPaid, "2025-11-10"),
		fee("F-A102-102025", "A-102", "Phạm Thị Lan", "10", 2025, 500000, 780000, 210000, 100000, models.StatusPaid, "2025-10-10"),
		fee("F-A201-112025", "A-201", "Lê Văn Hùng", "11", 2025, 550000, 1200000, 300000, 150000, models.StatusPaid, "2025-11-10"),
		fee("F-B205-102025", "B-205", "Lê Văn Cường", "10", 2025, 700000, 1900000, 420000, 200000, models.StatusOverdue, "2025-10-10"),
		fee("F-B310-112025", "B-310", "Đỗ Minh Quân", "11", 2025, 600000, 1300000, 280000, 150000, models.StatusOverdue, "2025-11-10"),
		fee("F-B402-102025", "B-402", "Hoàng Thị Yến", "10", 2025, 650000, 1400000, 300000, 150000, models.StatusPaid, "2025-10-10"),
		fee("F-C101-112025", "C-101", "Vũ Văn Nam", "11", 2025, 500000, 950000, 240000, 100000, models.StatusPaid, "2025-11-10"),
		fee("F-C410-102025", "C-410", "Trịnh Quốc Bảo", "10", 2025, 800000, 2200000, 480000, 250000, models.StatusPaid, "2025-10-10"),

		fee("F-A101-122025", "A-101", "Nguyễn Văn An", "12", 2025, 500000, 880000, 240000, 100000, models.StatusPaid, "2025-12-10"),
		fee("F-A102-122025", "A-102", "Phạm Thị Lan", "12", 2025, 500000, 820000, 220000, 100000, models.StatusPending, "2025-12-10"),
		fee("F-A201-122025", "A-201", "Lê Văn Hùng", "12", 2025, 550000, 1180000, 290000, 150000, models.StatusPaid, "2025-12-10"),
		fee("F-B205-122025", "B-205", "Lê Văn Cường", "12", 2025, 700000, 2100000, 450000, 200000, models.StatusPending, "2025-12-10"),
		fee("F-B310-122025", "B-310", "Đỗ Minh Quân", "12", 2025, 600000, 1350000, 300000, 150000, models.StatusPaid, "2025-12-10"),
		fee("F-B402-122025", "B-402", "Hoàng Thị Yến", "12", 2025, 650000, 1450000, 310000, 150000, models.StatusPaid, "2025-12-10"),
		fee("F-C101-122025", "C-101", "Vũ Văn Nam", "12", 2025, 500000, 980000, 260000, 100000, models.StatusPaid, "2025-12-10"),
		fee("F-C410-122025", "C-410", "Trịnh Quốc Bảo", "12", 2025, 800000, 2400000, 520000, 250000, models.StatusPending, "2025-12-10"),
	}
}

// SeedResidents returns a fresh copy of the initial resident collection.
func SeedResidents() []models.Resident {
	return []models.Resident{
		resident("A101-1", "A-101", "Nguyễn Văn An", "0901111111", "an.nguyen@gmail.com", models.RoleOwner, "2024-01-10", models.ResidentActive),
		resident("A101-2", "A-101", "Trần Thị Hoa", "0901111112", "hoa.tran@gmail.com", models.RoleMember, "2024-01-10", models.ResidentActive),

		resident("A102-1", "A-102", "Phạm Thị Lan", "0902222221", "lan.pham@gmail.com", models.RoleOwner, "2025-03-15", models.ResidentActive),
		resident("A102-2", "A-102", "Phạm Minh Tuấn", "0902222222", "tuan.pham@gmail.com", models.RoleMember, "2025-03-15", models.ResidentActive),

		resident("A201-1", "A-201", "Lê Văn Hùng", "0903333331", "hung.le@gmail.com", models.RoleOwner, "2023-06-01", models.ResidentActive),

		resident("B205-1", "B-205", "Lê Văn Cường", "0914444441", "cuong.le@gmail.com", models.RoleOwner, "2022-11-20", models.ResidentActive),
		resident("B205-2", "B-205", "Nguyễn Thị Mai", "0914444442", "mai.nguyen@gmail.com", models.RoleMember, "2022-11-20", models.ResidentTemporary),
		resident("B205-3", "B-205", "Nguyễn Văn Long", "0914444443", "long.nguyen@gmail.com", models.RoleMember, "2024-05-01", models.ResidentAbsent),

		resident("B310-1", "B-310", "Đỗ Minh Quân", "0915555551", "quan.do@gmail.com", models.RoleOwner, "2025-02-01", models.ResidentActive),
		resident("B402-1", "B-402", "Hoàng Thị Yến", "0916666661", "yen.hoang@gmail.com", models.RoleOwner, "2023-08-12", models.ResidentActive),

		resident("C101-1", "C-101", "Vũ Văn Nam", "0927777771", "nam.vu@gmail.com", models.RoleOwner, "2023-04-04", models.ResidentActive),
		resident("C101-2", "C-101", "Vũ Thị Hạnh", "0927777772", "hanh.vu@gmail.com", models.RoleMember, "2023-04-04", models.ResidentActive),

		resident("C410-1", "C-410", "Trịnh Quốc Bảo", "0928888881", "bao.trinh@gmail.com", models.RoleOwner, "2021-09-09", models.ResidentActive),
		resident("C410-2", "C-410", "Trịnh Gia Hân", "0928888882", "han.trinh@gmail.com", models.RoleMember, "2021-09-09", models.ResidentActive),
	}
}

func fee(id, apartmentID, residentName, month string, year int, management, electricity, water, parking int64, status models.PaymentStatus, dueDate string) models.FeeItem {
	return models.FeeItem{
		ID:            id,
		ApartmentID:   apartmentID,
		ResidentName:  residentName,
		Month:         month,
		Year:          year,
		ManagementFee: management,
		Electricity:   electricity,
		Water:         water,
		Parking:       parking,
		Total:         management + electricity + water + parking,
		Status:        status,
		DueDate:       dueDate,
	}
}

func resident(id, apartmentID, name, phone, email string, role models.ResidentRole, entryDate string, status models.ResidentStatus) models.Resident {
	return models.Resident{
		ID:          id,
		ApartmentID: apartmentID,
		Name:        name,
		Phone:       phone,
		Email:       email,
		Role:        role,
		EntryDate:   entryDate,
		Status:      status,
	}
}
