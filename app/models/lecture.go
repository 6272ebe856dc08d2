package models

// Lecture khóa học, core chỉ đọc tên chuẩn để so khớp
type Lecture struct {
	ID          int64  `bson:"_id" json:"id"`
	LectureName string `bson:"lecture_name" json:"lecture_name"`
}
