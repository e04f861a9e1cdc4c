package matching

// ScoringConfig параметры скоринга сопоставления колонок с каноническими
// полями. Все баллы аддитивны; значения подобраны на реальных выгрузках.
type ScoringConfig struct {
	// Лексические баллы
	ExactNameScore       float64 // заголовок == каноническое имя
	ExactSynonymScore    float64 // заголовок == синоним
	ContainsNameScore    float64 // заголовок содержит каноническое имя
	ContainsSynonymScore float64 // заголовок содержит синоним (длиной >= 3)
	TokenOverlapScore    float64 // за каждый общий токен

	// Бонусы регулярных выражений
	HeaderRegexBonus    float64 // заголовок совпал с шаблоном (один раз)
	ValueRegexBonus     float64 // за каждый сэмпл, совпавший с шаблоном значения
	ValueRegexBonusCap  float64 // потолок суммарного бонуса по значениям

	// Совместимость типов
	TypeCompatibleBonus     float64
	TypeIncompatiblePenalty float64

	// Бонус важности для пограничных кандидатов
	ImportanceBonus      float64
	StrongMatchThreshold float64

	// Кандидаты ниже порога отбрасываются
	MinimumMatchScore float64
}

// DefaultScoringConfig конфигурация скоринга по умолчанию
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ExactNameScore:          100,
		ExactSynonymScore:       90,
		ContainsNameScore:       50,
		ContainsSynonymScore:    25,
		TokenOverlapScore:       15,
		HeaderRegexBonus:        30,
		ValueRegexBonus:         3,
		ValueRegexBonusCap:      12,
		TypeCompatibleBonus:     10,
		TypeIncompatiblePenalty: -20,
		ImportanceBonus:         5,
		StrongMatchThreshold:    80,
		MinimumMatchScore:       30,
	}
}
