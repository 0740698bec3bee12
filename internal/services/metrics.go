package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/disk"
)

// StorageSample is a point-in-time view of the upload volume and row counts,
// persisted for the admin history endpoint and broadcast to live dashboards.
type StorageSample struct {
	CapturedAt     time.Time `json:"capturedAt"`
	DiskTotalBytes int64     `json:"diskTotalBytes"`
	DiskUsedBytes  int64     `json:"diskUsedBytes"`
	TeacherCount   int64     `json:"teacherCount"`
	FileCount      int64     `json:"fileCount"`
}

func CaptureStorageMetrics(db *sqlx.DB, diskPath string) (StorageSample, error) {
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}
	sample := StorageSample{
		CapturedAt: time.Now().UTC(),
	}
	if diskStat != nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}
	_ = db.Get(&sample.TeacherCount, `SELECT count(*) FROM teachers`)
	_ = db.Get(&sample.FileCount, `SELECT count(*) FROM files`)

	_, err = db.Exec(`
INSERT INTO storage_metric_samples (id, captured_at, disk_total_bytes, disk_used_bytes, teacher_count, file_count)
VALUES ($1,$2,$3,$4,$5,$6)
`, uuid.NewString(), sample.CapturedAt, sample.DiskTotalBytes, sample.DiskUsedBytes, sample.TeacherCount, sample.FileCount)
	if err != nil {
		return StorageSample{}, err
	}
	return sample, nil
}

func LatestStorageMetrics(db *sqlx.DB, limit int) ([]StorageSample, error) {
	type row struct {
		CapturedAt     time.Time `db:"captured_at"`
		DiskTotalBytes int64     `db:"disk_total_bytes"`
		DiskUsedBytes  int64     `db:"disk_used_bytes"`
		TeacherCount   int64     `db:"teacher_count"`
		FileCount      int64     `db:"file_count"`
	}
	rows := []row{}
	if err := db.Select(&rows, `
SELECT captured_at, disk_total_bytes, disk_used_bytes, teacher_count, file_count
FROM storage_metric_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit); err != nil {
		return nil, err
	}
	items := make([]StorageSample, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		items = append(items, StorageSample{
			CapturedAt:     rows[i].CapturedAt,
			DiskTotalBytes: rows[i].DiskTotalBytes,
			DiskUsedBytes:  rows[i].DiskUsedBytes,
			TeacherCount:   rows[i].TeacherCount,
			FileCount:      rows[i].FileCount,
		})
	}
	return items, nil
}

type MetricsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	ch      chan StorageSample
}

func NewMetricsHub() *MetricsHub {
	return &MetricsHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan StorageSample, 16),
	}
}

func (h *MetricsHub) Run(ctx context.Context) {
	for {
		select {
		case sample := <-h.ch:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.WriteJSON(sample)
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (h *MetricsHub) Broadcast(sample StorageSample) {
	select {
	case h.ch <- sample:
	default:
	}
}

func (h *MetricsHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *MetricsHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}
