package farmtools

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

type symptom struct {
	PossibleCauses []string
	Keywords       []string
	Questions      []string
}

// symptomOrder fixes iteration order so repeated analyses of the same
// description give identical results.
var symptomOrder = []string{
	"yellowing", "browning", "wilting", "curling", "stunted",
	"holes", "sticky", "webbing", "foul_smell", "musty_smell",
}

var symptomDatabase = map[string]symptom{
	"yellowing": {
		PossibleCauses: []string{"nitrogen_deficiency", "overwatering", "root_rot", "iron_deficiency"},
		Keywords:       []string{"yellow", "yellowing", "pale", "light colored"},
		Questions: []string{
			"Are the older leaves or newer leaves turning yellow?",
			"Is the soil very wet or waterlogged?",
			"How long has this been happening?",
		},
	},
	"browning": {
		PossibleCauses: []string{"fungal_infection", "underwatering", "nutrient_burn", "leaf_spot"},
		Keywords:       []string{"brown", "browning", "dark spots", "burnt"},
		Questions: []string{
			"Are the brown spots dry or wet?",
			"Did you recently apply fertilizer?",
			"Are the spots spreading?",
		},
	},
	"wilting": {
		PossibleCauses: []string{"underwatering", "root_damage", "bacterial_wilt", "heat_stress"},
		Keywords:       []string{"wilting", "drooping", "limp", "sagging"},
		Questions: []string{
			"When did you last water the plants?",
			"Has the weather been very hot?",
			"Do the stems look healthy?",
		},
	},
	"curling": {
		PossibleCauses: []string{"aphids", "virus", "herbicide_damage", "calcium_deficiency"},
		Keywords:       []string{"curling", "curled", "twisted", "deformed"},
		Questions: []string{
			"Do you see any small insects on the leaves?",
			"Were any chemicals sprayed nearby?",
			"Are new leaves also affected?",
		},
	},
	"stunted": {
		PossibleCauses: []string{"nutrient_deficiency", "poor_soil", "pest_damage", "disease"},
		Keywords:       []string{"small", "not growing", "stunted", "short"},
		Questions: []string{
			"How old are the plants?",
			"What fertilizer have you been using?",
			"Do the plants look healthy otherwise?",
		},
	},
	"holes": {
		PossibleCauses: []string{"caterpillars", "beetles", "grasshoppers"},
		Keywords:       []string{"holes", "eaten", "chewed", "damaged leaves"},
		Questions: []string{
			"Can you see any insects on the plants?",
			"Are the holes small or large?",
			"When did you first notice this?",
		},
	},
	"sticky": {
		PossibleCauses: []string{"aphids", "whiteflies", "scale_insects"},
		Keywords:       []string{"sticky", "honeydew", "shiny leaves"},
		Questions: []string{
			"Do you see small insects underneath the leaves?",
			"Are there ants on the plants?",
			"Is there black mold growing?",
		},
	},
	"webbing": {
		PossibleCauses: []string{"spider_mites", "webworms"},
		Keywords:       []string{"webs", "webbing", "silky threads"},
		Questions: []string{
			"Are the webs fine like spider webs or thick?",
			"Do you see tiny moving dots on leaves?",
			"Are leaves becoming dry and crispy?",
		},
	},
	"foul_smell": {
		PossibleCauses: []string{"root_rot", "bacterial_infection", "overwatering"},
		Keywords:       []string{"smell", "odor", "stink", "rotten"},
		Questions: []string{
			"Where is the smell coming from - soil or plant?",
			"How often are you watering?",
			"Is the soil staying wet for days?",
		},
	},
	"musty_smell": {
		PossibleCauses: []string{"fungal_infection", "mold", "poor_drainage"},
		Keywords:       []string{"musty", "moldy", "damp smell"},
		Questions: []string{
			"Do you see any white or gray powder on leaves?",
			"Is the area well-ventilated?",
			"Has it been very humid?",
		},
	},
}

type disease struct {
	Name       string
	Symptoms   []string
	Causes     []string
	Treatment  []string
	Prevention []string
	Severity   string
}

var diseaseDatabase = map[string]disease{
	"nitrogen_deficiency": {
		Name:     "Nitrogen Deficiency",
		Symptoms: []string{"Older leaves turn yellow", "Slow growth", "Pale green color"},
		Causes:   []string{"Lack of nitrogen fertilizer", "Poor soil", "Leaching from heavy rain"},
		Treatment: []string{
			"Apply nitrogen-rich fertilizer (urea, ammonium sulfate)",
			"Use organic options: cow dung, compost, neem cake",
			"Apply 50-100g per plant depending on size",
			"Results visible in 7-10 days",
		},
		Prevention: []string{
			"Regular fertilization every 2-3 weeks",
			"Maintain organic matter in soil",
			"Avoid overwatering which leaches nutrients",
		},
		Severity: "moderate",
	},
	"overwatering": {
		Name:     "Overwatering / Root Rot",
		Symptoms: []string{"Yellow leaves", "Wilting despite wet soil", "Foul smell from soil", "Root damage"},
		Causes:   []string{"Watering too frequently", "Poor drainage", "Heavy clay soil"},
		Treatment: []string{
			"STOP watering immediately",
			"Improve drainage by adding holes to soil",
			"Remove affected plants if severely damaged",
			"Let soil dry out before next watering",
			"Apply fungicide if root rot is severe",
		},
		Prevention: []string{
			"Water only when top 2-3 inches of soil is dry",
			"Ensure good drainage",
			"Use well-draining soil mix",
		},
		Severity: "high",
	},
	"aphids": {
		Name:     "Aphid Infestation",
		Symptoms: []string{"Small green/black insects on leaves", "Sticky honeydew", "Curled leaves", "Ants on plants"},
		Causes:   []string{"Warm weather", "Nearby infested plants", "Nitrogen-rich soil (attracts aphids)"},
		Treatment: []string{
			"Spray with soapy water (1 tbsp dish soap in 1L water)",
			"Neem oil spray (5ml per liter water)",
			"Introduce ladybugs (natural predator)",
			"Remove heavily infested leaves",
			"Repeat treatment every 3-4 days",
		},
		Prevention: []string{
			"Regular inspection of plants",
			"Companion planting with marigolds",
			"Avoid excessive nitrogen fertilizer",
		},
		Severity: "moderate",
	},
	"fungal_infection": {
		Name:     "Fungal Infection (General)",
		Symptoms: []string{"White/gray powder on leaves", "Brown spots", "Leaf decay", "Musty smell"},
		Causes:   []string{"High humidity", "Poor air circulation", "Overhead watering", "Infected seeds"},
		Treatment: []string{
			"Remove infected leaves immediately",
			"Apply fungicide (carbendazim, mancozeb)",
			"Improve air circulation",
			"Avoid wetting leaves when watering",
			"Spray neem oil as organic alternative",
		},
		Prevention: []string{
			"Water at base of plant, not leaves",
			"Ensure good spacing between plants",
			"Don't water in evening (promotes fungal growth)",
			"Use disease-free seeds",
		},
		Severity: "moderate",
	},
	"bacterial_wilt": {
		Name:     "Bacterial Wilt",
		Symptoms: []string{"Sudden wilting", "No recovery after watering", "Brown vascular tissue", "Plant death"},
		Causes:   []string{"Infected soil", "Contaminated tools", "Insect vectors"},
		Treatment: []string{
			"No effective treatment once infected",
			"Remove and destroy infected plants",
			"Do NOT compost infected plants",
			"Sterilize tools with bleach solution",
			"Don't plant same crop in that area for 2 years",
		},
		Prevention: []string{
			"Use disease-resistant varieties",
			"Rotate crops",
			"Control insect pests",
			"Avoid working in wet conditions",
		},
		Severity: "critical",
	},
	"spider_mites": {
		Name:     "Spider Mite Infestation",
		Symptoms: []string{"Tiny dots on leaves", "Fine webbing", "Yellow/bronze leaves", "Leaves drop off"},
		Causes:   []string{"Hot, dry weather", "Dusty conditions", "Stressed plants"},
		Treatment: []string{
			"Spray plants with strong water jet (dislodges mites)",
			"Neem oil spray",
			"Insecticidal soap",
			"Increase humidity around plants",
			"Repeat every 3 days for 2 weeks",
		},
		Prevention: []string{
			"Regular water spraying on leaf undersides",
			"Maintain plant health",
			"Avoid water stress",
		},
		Severity: "moderate",
	},
}

var severityRank = map[string]int{"low": 0, "moderate": 1, "high": 2, "critical": 3}

// DetectSymptoms returns the symptom categories whose keywords appear in
// the text, in database order.
func DetectSymptoms(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, name := range symptomOrder {
		for _, kw := range symptomDatabase[name].Keywords {
			if strings.Contains(lower, kw) {
				found = append(found, name)
				break
			}
		}
	}
	return found
}

type LikelyIssue struct {
	Name       string   `json:"name"`
	Confidence string   `json:"confidence"`
	Symptoms   []string `json:"symptoms"`
	Treatment  []string `json:"treatment"`
}

type PlantAnalysis struct {
	Status              string        `json:"status,omitempty"`
	Message             string        `json:"message,omitempty"`
	SymptomsDetected    []string      `json:"symptoms_detected,omitempty"`
	LikelyIssues        []LikelyIssue `json:"likely_issues,omitempty"`
	Recommendations     []string      `json:"recommendations,omitempty"`
	Severity            string        `json:"severity,omitempty"`
	ClarifyingQuestions []string      `json:"clarifying_questions,omitempty"`
}

// AnalyzePlantDescription maps a farmer's free-text description to likely
// issues and treatments. Vague descriptions get clarifying questions
// instead of a diagnosis.
func AnalyzePlantDescription(description string) PlantAnalysis {
	symptoms := DetectSymptoms(description)

	if len(symptoms) == 0 {
		return PlantAnalysis{
			Status:  "unclear",
			Message: "I couldn't identify specific symptoms from your description. Can you provide more details?",
			ClarifyingQuestions: []string{
				"What color are the leaves?",
				"Are there any spots or holes on the leaves?",
				"How is the plant's growth - normal, slow, or stunted?",
				"Do you see any insects?",
				"Any unusual smell?",
			},
		}
	}

	// Aggregate causes across symptoms, keeping first-seen order for a
	// stable tie-break.
	counts := make(map[string]int)
	var causeOrder []string
	for _, s := range symptoms {
		for _, cause := range symptomDatabase[s].PossibleCauses {
			if counts[cause] == 0 {
				causeOrder = append(causeOrder, cause)
			}
			counts[cause]++
		}
	}
	sort.SliceStable(causeOrder, func(i, j int) bool {
		return counts[causeOrder[i]] > counts[causeOrder[j]]
	})
	if len(causeOrder) > 3 {
		causeOrder = causeOrder[:3]
	}

	analysis := PlantAnalysis{
		SymptomsDetected: symptoms,
		Severity:         "low",
	}

	maxRank := 0
	for _, cause := range causeOrder {
		info, ok := diseaseDatabase[cause]
		if !ok {
			continue
		}

		confidence := "medium"
		if counts[cause] >= 2 {
			confidence = "high"
		}
		analysis.LikelyIssues = append(analysis.LikelyIssues, LikelyIssue{
			Name:       info.Name,
			Confidence: confidence,
			Symptoms:   info.Symptoms,
			Treatment:  info.Treatment,
		})

		if r := severityRank[info.Severity]; r > maxRank {
			maxRank = r
			analysis.Severity = info.Severity
		}
	}

	if len(analysis.LikelyIssues) > 0 {
		primary := analysis.LikelyIssues[0]
		analysis.Recommendations = primary.Treatment

		if primary.Confidence != "high" {
			seen := make(map[string]bool)
			for _, s := range symptoms {
				for _, q := range symptomDatabase[s].Questions {
					if !seen[q] && len(analysis.ClarifyingQuestions) < 3 {
						seen[q] = true
						analysis.ClarifyingQuestions = append(analysis.ClarifyingQuestions, q)
					}
				}
			}
		}
	}

	return analysis
}

var (
	heightRe = regexp.MustCompile(`(\d+)\s*(cm|centimeter|inch)`)
	leafRe   = regexp.MustCompile(`(\d+)\s*leaves`)
)

type PlantMetrics struct {
	HeightCm    float64 `json:"height_cm,omitempty"`
	LeafColor   string  `json:"leaf_color,omitempty"`
	ColorStatus string  `json:"color_status,omitempty"`
	LeafCount   int     `json:"leaf_count,omitempty"`
}

// ExtractPlantMetrics pulls quantitative hints (height, leaf color, leaf
// count) out of a description.
func ExtractPlantMetrics(description string) PlantMetrics {
	lower := strings.ToLower(description)
	var m PlantMetrics

	if match := heightRe.FindStringSubmatch(lower); match != nil {
		height := parseFloat(match[1])
		if strings.Contains(match[2], "inch") {
			height *= 2.54
		}
		m.HeightCm = height
	}

	colorStatus := []struct{ color, status string }{
		{"dark green", "healthy"},
		{"light green", "possibly_nitrogen_deficient"},
		{"yellow", "nutrient_deficient"},
		{"brown", "damaged"},
		{"pale", "weak"},
	}
	for _, cs := range colorStatus {
		if strings.Contains(lower, cs.color) {
			m.LeafColor = cs.color
			m.ColorStatus = cs.status
			break
		}
	}

	if match := leafRe.FindStringSubmatch(lower); match != nil {
		m.LeafCount = int(parseFloat(match[1]))
	}

	return m
}

func parseFloat(s string) float64 {
	var v float64
	for _, r := range s {
		v = v*10 + float64(r-'0')
	}
	return v
}

// Daily growth expectations in cm for open-field comparison.
var fieldGrowthRates = map[string]float64{
	"tomato":    2.0,
	"moong_dal": 1.5,
	"rice":      1.8,
	"wheat":     1.2,
	"cucumber":  2.5,
}

type GrowthAssessment struct {
	ExpectedHeightCm float64 `json:"expected_height_cm"`
	ActualHeightCm   float64 `json:"actual_height_cm"`
	GrowthStatus     string  `json:"growth_status"`
	Message          string  `json:"message,omitempty"`
	DeviationPercent float64 `json:"deviation_percent,omitempty"`
}

// CompareWithExpected judges whether a plant is on track for its age.
func CompareWithExpected(metrics PlantMetrics, cropType string, daysOld int) GrowthAssessment {
	rate, ok := fieldGrowthRates[normalizeCrop(cropType)]
	if !ok {
		rate = 1.5
	}
	expected := rate * float64(daysOld)

	assessment := GrowthAssessment{
		ExpectedHeightCm: round1(expected),
		ActualHeightCm:   metrics.HeightCm,
		GrowthStatus:     "unknown",
	}

	if metrics.HeightCm > 0 && expected > 0 {
		deviation := (metrics.HeightCm - expected) / expected * 100
		switch {
		case deviation > 20:
			assessment.GrowthStatus = "fast"
			assessment.Message = "Growing faster than expected!"
		case deviation < -20:
			assessment.GrowthStatus = "slow"
			assessment.Message = "Growth is slower than expected. Check nutrition and water."
		default:
			assessment.GrowthStatus = "on_track"
			assessment.Message = "Growth is normal"
		}
		assessment.DeviationPercent = round1(deviation)
	}

	return assessment
}

func registerPlantCapabilities(r *Registry) {
	r.Register(Capability{
		Name:        "analyze_plant_description",
		Description: "Analyze farmer's natural language description of plant health to detect issues",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"description": {"type": "string", "description": "Farmer's description of the plant"},
				"crop_type": {"type": "string", "description": "Type of crop (optional)"}
			},
			"required": ["description"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Description string `json:"description"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return AnalyzePlantDescription(in.Description), nil
		},
	})

	r.Register(Capability{
		Name:        "extract_plant_metrics",
		Description: "Extract quantitative metrics (height, color, etc.) from description",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"description": {"type": "string"}
			},
			"required": ["description"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Description string `json:"description"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return ExtractPlantMetrics(in.Description), nil
		},
	})

	r.Register(Capability{
		Name:        "compare_with_expected",
		Description: "Compare actual plant metrics with expected values for crop age",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"actual_metrics": {"type": "object"},
				"crop_type": {"type": "string"},
				"days_old": {"type": "integer"}
			},
			"required": ["actual_metrics", "crop_type", "days_old"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				ActualMetrics PlantMetrics `json:"actual_metrics"`
				CropType      string       `json:"crop_type"`
				DaysOld       int          `json:"days_old"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return CompareWithExpected(in.ActualMetrics, in.CropType, in.DaysOld), nil
		},
	})
}
