package port

import "maskflow/internal/domain/entity"

// FeatureMatcher — разреженный поток: поиск точек-признаков и их
// сопоставление между двумя серыми кадрами.
type FeatureMatcher interface {
	// Detect находит до maxFeatures локально различимых точек по критерию
	// угловой силы с минимальной дистанцией между ними.
	Detect(gray *entity.GrayBuffer, maxFeatures int) ([]entity.Point, error)

	// Match оценивает новые позиции точек пирамидальным сопоставлением.
	// Возвращает позиции и флаг валидности для каждой исходной точки.
	Match(prev, next *entity.GrayBuffer, points []entity.Point) ([]entity.Point, []bool, error)
}
