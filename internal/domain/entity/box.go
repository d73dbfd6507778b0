package entity

// Box прямоугольник в пиксельных координатах (x1,y1)-(x2,y2)
type Box struct {
	X1 int // левая граница
	Y1 int // верхняя граница
	X2 int // правая граница
	Y2 int // нижняя граница
}

// Center возвращает целочисленный центр прямоугольника
func (b Box) Center() (x, y int) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// Width возвращает ширину прямоугольника
func (b Box) Width() int {
	return b.X2 - b.X1
}

// Height возвращает высоту прямоугольника
func (b Box) Height() int {
	return b.Y2 - b.Y1
}

// Area возвращает площадь прямоугольника
func (b Box) Area() int {
	return b.Width() * b.Height()
}

// Valid сообщает, что x1<x2 и y1<y2
func (b Box) Valid() bool {
	return b.X1 < b.X2 && b.Y1 < b.Y2
}

// Translate сдвигает прямоугольник на (dx, dy)
func (b Box) Translate(dx, dy int) Box {
	return Box{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}

// Detection сырой результат внешнего детектора.
type Detection struct {
	Box        Box
	Label      int     // индекс класса модели
	Confidence float64 // уверенность модели
}
