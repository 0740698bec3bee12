package models

import "time"

const (
	TeacherStatusPending  = "pending"
	TeacherStatusApproved = "approved"
)

type Teacher struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

type Admin struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}

type Folder struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	ParentID  *int64    `db:"parent_id"`
	OwnerID   int64     `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

type File struct {
	ID         int64     `db:"id"`
	FileName   string    `db:"file_name"`
	FilePath   string    `db:"file_path"`
	UploaderID int64     `db:"uploader_id"`
	FolderID   *int64    `db:"folder_id"`
	Subject    string    `db:"subject"`
	UploadDate time.Time `db:"upload_date"`
}

type TimetableEntry struct {
	ID        int64  `db:"id"`
	DayOfWeek int    `db:"day_of_week"`
	Title     string `db:"title"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	Teacher   string `db:"teacher"`
	Location  string `db:"location"`
	Notes     string `db:"notes"`
}

type StorageMetricSample struct {
	ID             string    `db:"id"`
	CapturedAt     time.Time `db:"captured_at"`
	DiskTotalBytes int64     `db:"disk_total_bytes"`
	DiskUsedBytes  int64     `db:"disk_used_bytes"`
	TeacherCount   int64     `db:"teacher_count"`
	FileCount      int64     `db:"file_count"`
}
