// Package docs Urbanyx Service API.
//
// Сервис градостроительного анализа для детских садов и школ Тбилиси.
// Оценивает безопасность маршрута по данным о ДТП, доступность школ,
// детские площадки и окружение вокруг точки. Тексты отчётов на грузинском.
//
// Основные возможности:
// - Анализ пешеходного/вело/авто маршрута по сегментам с плотностью ДТП
// - Анализ зоны доступности (изохрона или переданный полигон)
// - Оценка доступности школ и оборудования детских площадок
// - Уличные снимки Mapillary вокруг точки
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
