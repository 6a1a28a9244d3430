package models

import "time"

type Folder struct {
	ID        int64
	Name      string
	UserID    int64
	CreatedAt time.Time
}
