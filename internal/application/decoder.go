package app

import (
	"context"
	"fmt"
	"image"
	"sort"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
	"omr-bot/internal/domain/sheet"
	"omr-bot/internal/logger"
)

// SheetDecoder перебирает гипотезы поворота и распознаёт поля бланка.
// Детекторы общие для всех вызовов; сам вызов не хранит состояния между бланками.
type SheetDecoder struct {
	regions port.RegionDetector
	bubbles *BubbleReader
	images  port.PageImages
	th      sheet.Thresholds
	log     *logger.Logger
}

// Trace промежуточные данные принятой гипотезы (для отладки и подсветки)
type Trace struct {
	Rotation entity.Rotation
	Image    image.Image     // повернутый бланк
	Regions  []entity.Region // области в координатах повернутого бланка
	Bubbles  []entity.Bubble // отметки в тех же координатах
}

// NewSheetDecoder создаёт декодер бланков.
func NewSheetDecoder(regions port.RegionDetector, bubbles port.BubbleDetector, images port.PageImages, th sheet.Thresholds, log *logger.Logger) *SheetDecoder {
	return &SheetDecoder{
		regions: regions,
		bubbles: NewBubbleReader(bubbles, th, log),
		images:  images,
		th:      th,
		log:     log,
	}
}

// DecodeFile читает бланк с диска и распознаёт его.
func (d *SheetDecoder) DecodeFile(ctx context.Context, path string) (*entity.DecodeResult, error) {
	result, _, err := d.DecodeFileTraced(ctx, path)
	return result, err
}

// DecodeFileTraced как DecodeFile, но возвращает и данные принятой гипотезы.
func (d *SheetDecoder) DecodeFileTraced(ctx context.Context, path string) (*entity.DecodeResult, *Trace, error) {
	img, err := d.images.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return d.DecodeTraced(ctx, img)
}

// Decode распознаёт бланк в памяти.
// entity.ErrNoOrientation означает, что ни один поворот не прошёл проверку разметки.
func (d *SheetDecoder) Decode(ctx context.Context, img image.Image) (*entity.DecodeResult, error) {
	result, _, err := d.DecodeTraced(ctx, img)
	return result, err
}

// DecodeTraced перебирает повороты 0°, 90°, 180°, 270° и возвращает первый, прошедший проверку разметки.
// Частичный результат (nil-поля) возвращается как есть, следующие повороты уже не пробуются.
func (d *SheetDecoder) DecodeTraced(ctx context.Context, img image.Image) (*entity.DecodeResult, *Trace, error) {
	for _, rot := range entity.Rotations {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		rotated := d.images.Rotate(img, rot)
		regions, err := d.detectRegions(ctx, rotated)
		if err != nil {
			return nil, nil, err
		}

		ids, codes, answers := bucket(regions)
		if err := sheet.ValidateLayout(boxes(ids), boxes(codes), boxes(answers), d.th.Axis); err != nil {
			d.log.Info("rotation %d°: %v", rot.Degrees(), err)
			continue
		}

		d.log.Info("rotation %d°: layout accepted (%d answer regions)", rot.Degrees(), len(answers))
		trace := &Trace{Rotation: rot, Image: rotated, Regions: regions}
		result, err := d.decodeFields(ctx, ids[0], codes[0], answers, trace)
		if err != nil {
			return nil, nil, err
		}
		result.Rotation = rot.Degrees()
		return result, trace, nil
	}
	return nil, nil, entity.ErrNoOrientation
}

// detectRegions находит области и вырезает их из того же повернутого изображения.
// Region.Box остаётся рамкой детектора: по ней проверяется разметка, обрезается только вырезка.
func (d *SheetDecoder) detectRegions(ctx context.Context, img image.Image) ([]entity.Region, error) {
	detections, err := d.regions.DetectRegions(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%w: regions: %w", entity.ErrDetector, err)
	}

	regions := make([]entity.Region, 0, len(detections))
	for _, det := range detections {
		typ, ok := entity.RegionTypeFromLabel(det.Label)
		if !ok || !det.Box.Valid() {
			continue
		}
		crop, ok := d.images.Crop(img, det.Box)
		if !ok {
			continue
		}
		regions = append(regions, entity.Region{Box: det.Box, Type: typ, Crop: crop})
	}
	return regions, nil
}

func (d *SheetDecoder) decodeFields(ctx context.Context, id, code entity.Region, answers []entity.Region, trace *Trace) (*entity.DecodeResult, error) {
	result := &entity.DecodeResult{}

	studentID, ambiguous, err := d.decodeColumns(ctx, id, entity.IDGrid, trace)
	if err != nil {
		return nil, err
	}
	result.StudentID = studentID
	for _, col := range ambiguous {
		result.Ambiguous = append(result.Ambiguous, fmt.Sprintf("student_id[%d]", col))
	}

	examCode, ambiguous, err := d.decodeColumns(ctx, code, entity.CodeGrid, trace)
	if err != nil {
		return nil, err
	}
	result.ExamCode = examCode
	for _, col := range ambiguous {
		result.Ambiguous = append(result.Ambiguous, fmt.Sprintf("exam_code[%d]", col))
	}

	field, ambiguous, err := d.decodeAnswers(ctx, answers, trace)
	if err != nil {
		return nil, err
	}
	if field != nil {
		result.Answers = sheet.AnswerLetters(*field)
		for _, q := range ambiguous {
			result.Ambiguous = append(result.Ambiguous, fmt.Sprintf("answer %d", q+1))
		}
	}
	return result, nil
}

// decodeColumns читает номер ученика или код варианта.
// nil-поле без ошибки означает мягкий отказ, ошибка возвращается только при сбое детектора.
func (d *SheetDecoder) decodeColumns(ctx context.Context, region entity.Region, spec entity.GridSpec, trace *Trace) (*entity.DecodedField, []int, error) {
	bubbles, err := d.bubbles.Read(ctx, region.Crop)
	if err != nil {
		return nil, nil, err
	}
	trace.addBubbles(region, bubbles)
	if len(bubbles) == 0 {
		d.log.Warning("%s field: no bubbles detected", region.Type)
		return nil, nil, nil
	}

	field, ambiguous, err := sheet.DecodeColumns(bubbles, spec, d.th)
	if err != nil {
		d.log.Warning("%s field: %v", region.Type, err)
		return nil, nil, nil
	}
	return &field, ambiguous, nil
}

func (d *SheetDecoder) decodeAnswers(ctx context.Context, answers []entity.Region, trace *Trace) (*entity.DecodedField, []int, error) {
	sorted := append([]entity.Region(nil), answers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.Y1 < sorted[j].Box.Y1
	})

	input := make([]sheet.RegionBubbles, 0, len(sorted))
	for n, region := range sorted {
		bubbles, err := d.bubbles.Read(ctx, region.Crop)
		if err != nil {
			return nil, nil, err
		}
		trace.addBubbles(region, bubbles)
		if len(bubbles) == 0 {
			d.log.Warning("answer region %d: no bubbles detected", n)
			return nil, nil, nil
		}
		input = append(input, sheet.RegionBubbles{Box: region.Box, Bubbles: bubbles})
	}

	groups, err := sheet.GroupAnswers(input, d.th)
	if err != nil {
		d.log.Warning("answers: %v", err)
		return nil, nil, nil
	}
	field, ambiguous, err := sheet.DecodeAnswers(groups, d.th)
	if err != nil {
		d.log.Warning("answers: %v", err)
		return nil, nil, nil
	}
	return &field, ambiguous, nil
}

// addBubbles переносит отметки из координат вырезки в координаты бланка.
func (t *Trace) addBubbles(region entity.Region, bubbles []entity.Bubble) {
	origin := clip(region.Box, t.Image.Bounds())
	for _, b := range bubbles {
		t.Bubbles = append(t.Bubbles, entity.Bubble{
			Box:   b.Box.Translate(origin.X1, origin.Y1),
			Class: b.Class,
		})
	}
}

func bucket(regions []entity.Region) (ids, codes, answers []entity.Region) {
	for _, r := range regions {
		switch r.Type {
		case entity.IDBlock:
			ids = append(ids, r)
		case entity.CodeBlock:
			codes = append(codes, r)
		case entity.AnswerBlock:
			answers = append(answers, r)
		}
	}
	return ids, codes, answers
}

func boxes(regions []entity.Region) []entity.Box {
	out := make([]entity.Box, len(regions))
	for i, r := range regions {
		out[i] = r.Box
	}
	return out
}

func clip(b entity.Box, bounds image.Rectangle) entity.Box {
	return entity.Box{
		X1: max(b.X1, bounds.Min.X),
		Y1: max(b.Y1, bounds.Min.Y),
		X2: min(b.X2, bounds.Max.X),
		Y2: min(b.Y2, bounds.Max.Y),
	}
}
