package entity

// Rotation гипотеза поворота страницы (по часовой стрелке)
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Rotations порядок перебора гипотез.
var Rotations = []Rotation{Rotate0, Rotate90, Rotate180, Rotate270}

// Degrees возвращает угол поворота в градусах
func (r Rotation) Degrees() int {
	return int(r) * 90
}

// DecodeResult итог распознавания бланка.
// nil-поле означает, что соответствующее поле не прошло проверку.
type DecodeResult struct {
	StudentID *DecodedField  `json:"student_id"`
	ExamCode  *DecodedField  `json:"exam_code"`
	Answers   map[int]string `json:"answers"`
	Rotation  int            `json:"rotation"`

	// Ambiguous позиции с несколькими отметками, оставленные по правилу "последняя побеждает".
	Ambiguous []string `json:"ambiguous,omitempty"`
}
