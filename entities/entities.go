package entities

import "strings"

// Provenance происхождение записи: файл, лист и строка, из которых она
// была разобрана
type Provenance struct {
	SourceFile string `json:"source_file"`
	Sheet      string `json:"sheet"`
	RowIndex   int    `json:"row_index"`
}

// LocationKey денормализованный ключ расположения актива
type LocationKey struct {
	Project string `json:"project,omitempty"`
	Area    string `json:"area,omitempty"`
	Line    string `json:"line,omitempty"`
	Station string `json:"station,omitempty"`
}

// Flag отметка проблемы на станции. Идентичность флага — кортеж
// (тип, станция, робот, клещи), по нему считаются появившиеся и снятые флаги
type Flag struct {
	Type    string `json:"type"`
	Station string `json:"station"`
	Robot   string `json:"robot,omitempty"`
	Gun     string `json:"gun,omitempty"`
	Message string `json:"message,omitempty"`
}

// Key ключ идентичности флага
func (f Flag) Key() string {
	return strings.Join([]string{f.Type, f.Station, f.Robot, f.Gun}, "|")
}

// Project проект моделирования производства
type Project struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Customer   string     `json:"customer"`
	Plant      string     `json:"plant,omitempty"`
	Carline    string     `json:"carline,omitempty"`
	Metadata   MetaMap    `json:"metadata,omitempty"`
	Provenance Provenance `json:"provenance"`
}

// EntityID идентификатор сущности
func (p Project) EntityID() string { return p.ID }

// BusinessKey стабильный семантический ключ проекта
func (p Project) BusinessKey() string {
	return strings.ToLower(strings.TrimSpace(p.Customer)) + "|" + strings.ToLower(strings.TrimSpace(p.Name))
}

// Area участок производства внутри проекта
type Area struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Location   LocationKey `json:"location"`
	Metadata   MetaMap    `json:"metadata,omitempty"`
	Provenance Provenance `json:"provenance"`
}

// EntityID идентификатор сущности
func (a Area) EntityID() string { return a.ID }

// BusinessKey стабильный ключ участка
func (a Area) BusinessKey() string {
	return strings.ToLower(a.Location.Project + "|" + a.Name)
}

// Cell станция (рабочая позиция), основная отслеживаемая единица.
// StatusFields хранит сырые метрики статуса по именам колонок источника.
type Cell struct {
	ID                   string             `json:"id"`
	StationID            string             `json:"station_id"`
	Code                 string             `json:"code,omitempty"`
	Name                 string             `json:"name,omitempty"`
	Location             LocationKey        `json:"location"`
	Application          string             `json:"application,omitempty"`
	SimulationEngineer   string             `json:"simulation_engineer,omitempty"`
	ToolSimLead          string             `json:"tool_sim_lead,omitempty"`
	TeamLead             string             `json:"team_lead,omitempty"`
	FirstStageCompletion float64            `json:"first_stage_completion"`
	FinalDeliverables    float64            `json:"final_deliverables"`
	PercentComplete      float64            `json:"percent_complete"`
	Status               string             `json:"status,omitempty"`
	StatusFields         map[string]float64 `json:"status_fields,omitempty"`
	Flags                []Flag             `json:"flags,omitempty"`
	RobotCount           int                `json:"robot_count"`
	ToolCount            int                `json:"tool_count"`
	WeldGunCount         int                `json:"weld_gun_count"`
	RiserCount           int                `json:"riser_count"`
	Metadata             MetaMap            `json:"metadata,omitempty"`
	Provenance           Provenance         `json:"provenance"`
}

// EntityID идентификатор сущности
func (c Cell) EntityID() string { return c.ID }

// BusinessKey стабильный ключ станции: station id, иначе code, иначе id.
// Благодаря ему переименование сырого id не выглядит как удаление+создание.
func (c Cell) BusinessKey() string {
	if c.StationID != "" {
		return strings.ToLower(c.StationID)
	}
	if c.Code != "" {
		return strings.ToLower(c.Code)
	}
	return c.ID
}

// Robot робот на станции
type Robot struct {
	ID          string      `json:"id"`
	Number      string      `json:"number"`
	Name        string      `json:"name,omitempty"`
	Type        string      `json:"type,omitempty"`
	ENumber     string      `json:"e_number,omitempty"`
	Application string      `json:"application,omitempty"`
	Location    LocationKey `json:"location"`
	Metadata    MetaMap     `json:"metadata,omitempty"`
	Provenance  Provenance  `json:"provenance"`
}

// EntityID идентификатор сущности
func (r Robot) EntityID() string { return r.ID }

// BusinessKey стабильный ключ робота
func (r Robot) BusinessKey() string {
	return strings.ToLower(r.Location.Station + "|" + r.Number)
}

// Tool инструмент или сварочные клещи на станции
type Tool struct {
	ID         string      `json:"id"`
	Number     string      `json:"number"`
	Type       string      `json:"type,omitempty"`
	GunName    string      `json:"gun_name,omitempty"`
	GunType    string      `json:"gun_type,omitempty"`
	ForceKN    float64     `json:"force_kn,omitempty"`
	Supplier   string      `json:"supplier,omitempty"`
	Location   LocationKey `json:"location"`
	Metadata   MetaMap     `json:"metadata,omitempty"`
	Provenance Provenance  `json:"provenance"`
}

// EntityID идентификатор сущности
func (t Tool) EntityID() string { return t.ID }

// BusinessKey стабильный ключ инструмента
func (t Tool) BusinessKey() string {
	number := t.Number
	if number == "" {
		number = t.GunName
	}
	return strings.ToLower(t.Location.Station + "|" + number)
}
