package registry

import "regexp"

// defaultCatalog статический каталог канонических полей. Список плоский и
// только дополняется: id существующих полей менять нельзя, на них завязаны
// сохраненные сопоставления. Синонимы в нижнем регистре и включают
// замеченные в реальных выгрузках опечатки и немецкие/французские термины.
var defaultCatalog = []FieldDescriptor{
	// Проект
	{
		ID:       "project_id",
		Name:     "Project",
		Synonyms: []string{"project id", "project code", "proyect", "projekt", "projet", "project number", "project no"},
		Type:     TypeIdentifier,
		HeaderPatterns: []*regexp.Regexp{
			headerRe(`^pro[jy]e[ck]?t`),
		},
		Importance: ImportanceHigh,
	},
	{
		ID:         "project_name",
		Name:       "Project Name",
		Synonyms:   []string{"projectname", "projektname", "nom du projet", "program", "programme"},
		Type:       TypeString,
		Importance: ImportanceHigh,
	},
	{
		ID:         "customer",
		Name:       "Customer",
		Synonyms:   []string{"client", "kunde", "oem", "customer name", "custommer"},
		Type:       TypeString,
		Importance: ImportanceHigh,
	},
	{
		ID:         "plant",
		Name:       "Plant",
		Synonyms:   []string{"werk", "usine", "factory", "site", "plant code"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},
	{
		ID:         "carline",
		Name:       "Carline",
		Synonyms:   []string{"car line", "model", "vehicle", "baureihe", "vehicle line"},
		Type:       TypeString,
		Importance: ImportanceLow,
	},

	// Расположение
	{
		ID:         "area",
		Name:       "Area",
		Synonyms:   []string{"zone", "bereich", "area name", "shop", "department", "abteilung"},
		Type:       TypeString,
		Importance: ImportanceHigh,
	},
	{
		ID:         "line",
		Name:       "Line",
		Synonyms:   []string{"linie", "ligne", "line code", "assembly line", "prodline"},
		Type:       TypeString,
		Importance: ImportanceHigh,
	},
	{
		ID:       "station",
		Name:     "Station",
		Synonyms: []string{"cell", "station id", "station number", "station no", "workstation", "zelle", "poste", "stn", "staion"},
		Type:     TypeIdentifier,
		HeaderPatterns: []*regexp.Regexp{
			headerRe(`^sta?t?ion\b`),
			headerRe(`^cell\b`),
		},
		ValuePatterns: []*regexp.Regexp{
			headerRe(`^[a-z]{1,3}[\s_-]?\d{2,4}$`),
		},
		Importance: ImportanceHigh,
	},
	{
		ID:         "station_name",
		Name:       "Station Name",
		Synonyms:   []string{"cell name", "station description", "stationsname"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},

	// Роботы
	{
		ID:       "robot_number",
		Name:     "Robot Number",
		Synonyms: []string{"robot", "robotnumber", "robot no", "robot id", "roboter", "robot num", "rob"},
		Type:     TypeIdentifier,
		HeaderPatterns: []*regexp.Regexp{
			headerRe(`^robot\s*(number|no|num|id)?$`),
		},
		ValuePatterns: []*regexp.Regexp{
			headerRe(`^r\d{1,3}$`),
		},
		Importance: ImportanceHigh,
	},
	{
		ID:         "robot_name",
		Name:       "Robot Name",
		Synonyms:   []string{"robotname", "robotername", "robot description"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},
	{
		ID:         "robot_type",
		Name:       "Robot Type",
		Synonyms:   []string{"robot model", "robotertyp", "manipulator", "robot typ"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},
	{
		ID:         "e_number",
		Name:       "E-Number",
		Synonyms:   []string{"enumber", "e number", "e-nummer", "equipment number"},
		Type:       TypeIdentifier,
		Importance: ImportanceMedium,
	},
	{
		ID:         "application",
		Name:       "Application",
		Synonyms:   []string{"process", "anwendung", "app", "technology", "aplication"},
		Type:       TypeString,
		Importance: ImportanceHigh,
	},

	// Инструменты и клещи
	{
		ID:         "tool_number",
		Name:       "Tool Number",
		Synonyms:   []string{"tool", "tool no", "tool id", "werkzeug", "outil", "fixture", "fixture number"},
		Type:       TypeIdentifier,
		Importance: ImportanceHigh,
	},
	{
		ID:         "tool_type",
		Name:       "Tool Type",
		Synonyms:   []string{"tooltype", "werkzeugtyp", "type outil", "fixture type"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},
	{
		ID:         "gun_name",
		Name:       "Gun Name",
		Synonyms:   []string{"gun", "weld gun", "weldgun", "gun id", "zange", "schweisszange", "pince"},
		Type:       TypeIdentifier,
		Importance: ImportanceHigh,
	},
	{
		ID:         "gun_type",
		Name:       "Gun Type",
		Synonyms:   []string{"guntype", "zangentyp", "gun model"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},
	{
		ID:       "gun_force_kn",
		Name:     "Gun Force",
		Synonyms: []string{"gunforce", "force", "electrode force", "weld force", "kraft", "elektrodenkraft"},
		Type:     TypeNumber,
		Unit:     "kN",
		HeaderPatterns: []*regexp.Regexp{
			headerRe(`gun\s*force`),
			headerRe(`force\s*(kn|n)?$`),
		},
		Importance: ImportanceHigh,
	},
	{
		ID:         "gun_force_n",
		Name:       "Gun Force N",
		Synonyms:   []string{"gun force newton", "force n"},
		Type:       TypeNumber,
		Unit:       "N",
		Importance: ImportanceMedium,
	},
	{
		ID:         "gun_stroke",
		Name:       "Gun Stroke",
		Synonyms:   []string{"stroke", "hub", "opening", "gun opening"},
		Type:       TypeNumber,
		Unit:       "mm",
		Importance: ImportanceLow,
	},
	{
		ID:         "riser_count",
		Name:       "Risers",
		Synonyms:   []string{"riser", "riser count", "risers qty", "podest"},
		Type:       TypeInteger,
		Importance: ImportanceLow,
	},

	// Ответственные
	{
		ID:         "simulation_engineer",
		Name:       "Simulation Engineer",
		Synonyms:   []string{"sim engineer", "engineer", "simulation owner", "owner", "simulant", "simulationsingenieur", "responsible", "verantwortlicher", "responsable"},
		Type:       TypeString,
		Importance: ImportanceHigh,
	},
	{
		ID:         "tool_sim_lead",
		Name:       "Tool Sim Lead",
		Synonyms:   []string{"sim lead", "simulation lead", "tool lead", "lead engineer"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},
	{
		ID:         "team_lead",
		Name:       "Team Lead",
		Synonyms:   []string{"teamlead", "team leader", "teamleiter", "chef d'equipe", "supervisor"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},
	{
		ID:         "supplier",
		Name:       "Supplier",
		Synonyms:   []string{"vendor", "lieferant", "fournisseur", "hersteller", "manufacturer", "suplier"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},

	// Статусы и метрики выполнения
	{
		ID:       "first_stage_completion",
		Name:     "First Stage",
		Synonyms: []string{"first stage completion", "stage 1", "1st stage", "first stage %", "erste stufe"},
		Type:     TypePercentage,
		HeaderPatterns: []*regexp.Regexp{
			headerRe(`first\s*stage`),
			headerRe(`stage\s*1\b`),
		},
		Importance: ImportanceHigh,
	},
	{
		ID:       "final_deliverables",
		Name:     "Final Deliverables",
		Synonyms: []string{"final deliverables completion", "final stage", "deliverables", "final %", "endstand"},
		Type:     TypePercentage,
		HeaderPatterns: []*regexp.Regexp{
			headerRe(`final\s*deliver`),
		},
		Importance: ImportanceHigh,
	},
	{
		ID:       "percent_complete",
		Name:     "Percent Complete",
		Synonyms: []string{"complete", "completion", "progress", "% complete", "percentcomplete", "fortschritt", "avancement"},
		Type:     TypePercentage,
		HeaderPatterns: []*regexp.Regexp{
			headerRe(`(%|percent|pct).*(complete|done)`),
			headerRe(`(complete|done).*(%|percent|pct)`),
		},
		Importance: ImportanceHigh,
	},
	{
		ID:         "status",
		Name:       "Status",
		Synonyms:   []string{"state", "zustand", "etat", "statuss", "progress status"},
		Type:       TypeString,
		Importance: ImportanceHigh,
	},
	{
		ID:         "configured",
		Name:       "Configured",
		Synonyms:   []string{"config", "configured %", "konfiguriert"},
		Type:       TypePercentage,
		Importance: ImportanceMedium,
	},
	{
		ID:         "confirmed",
		Name:       "Confirmed",
		Synonyms:   []string{"confirm", "confirmed %", "bestaetigt", "confirme"},
		Type:       TypePercentage,
		Importance: ImportanceMedium,
	},
	{
		ID:         "checked",
		Name:       "Checked",
		Synonyms:   []string{"check", "checked %", "geprueft", "verifie"},
		Type:       TypePercentage,
		Importance: ImportanceMedium,
	},
	{
		ID:         "flag_type",
		Name:       "Flag",
		Synonyms:   []string{"issue", "issue type", "problem", "blocker", "risk"},
		Type:       TypeString,
		Importance: ImportanceMedium,
	},

	// Количество оборудования
	{
		ID:         "robot_count",
		Name:       "Robot Count",
		Synonyms:   []string{"robots", "robot qty", "number of robots", "anzahl roboter"},
		Type:       TypeInteger,
		Importance: ImportanceLow,
	},
	{
		ID:         "tool_count",
		Name:       "Tool Count",
		Synonyms:   []string{"tools", "tool qty", "number of tools"},
		Type:       TypeInteger,
		Importance: ImportanceLow,
	},
	{
		ID:         "weld_gun_count",
		Name:       "Weld Gun Count",
		Synonyms:   []string{"guns", "gun qty", "weld guns", "anzahl zangen"},
		Type:       TypeInteger,
		Importance: ImportanceLow,
	},

	// Даты и прочее
	{
		ID:         "due_date",
		Name:       "Due Date",
		Synonyms:   []string{"deadline", "target date", "termin", "echeance", "due"},
		Type:       TypeDate,
		Importance: ImportanceMedium,
	},
	{
		ID:         "modified_date",
		Name:       "Modified Date",
		Synonyms:   []string{"last modified", "updated", "change date", "geaendert am"},
		Type:       TypeDate,
		Importance: ImportanceLow,
	},
	{
		ID:       "comment",
		Name:     "Comment",
		Synonyms: []string{"comments", "coments", "remark", "remarks", "note", "notes", "kommentar", "bemerkung", "commentaire", "anmerkung"},
		Type:     TypeString,
		HeaderPatterns: []*regexp.Regexp{
			headerRe(`^com+ents?$`),
		},
		Importance: ImportanceMedium,
	},
	{
		ID:         "description",
		Name:       "Description",
		Synonyms:   []string{"desc", "beschreibung", "description courte", "descripton"},
		Type:       TypeString,
		Importance: ImportanceLow,
	},
}
