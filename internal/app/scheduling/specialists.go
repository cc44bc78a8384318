package scheduling

import "github.com/mamahealth/triage-agent/internal/domain"

// specialists is the mock provider directory. Keys are the specialist types
// the agent prompts recommend by name.
var specialists = map[string]domain.Specialist{
	"Primary Care Physician":        {Name: "Dr. Sarah Mitchell", Specialty: "General & Family Medicine"},
	"Cardiologist":                  {Name: "Dr. James Chen", Specialty: "Heart & Cardiovascular Care"},
	"Neurologist":                   {Name: "Dr. Emily Rodriguez", Specialty: "Brain & Nervous System"},
	"Gastroenterologist":            {Name: "Dr. Michael Okafor", Specialty: "Digestive System"},
	"Dermatologist":                 {Name: "Dr. Anna Kowalski", Specialty: "Skin Conditions"},
	"OB-GYN":                        {Name: "Dr. Lisa Thompson", Specialty: "Women's Health & Pregnancy"},
	"Orthopedist":                   {Name: "Dr. David Kim", Specialty: "Bones & Joints"},
	"Rheumatologist":                {Name: "Dr. Maria Santos", Specialty: "Joint & Autoimmune Conditions"},
	"Pulmonologist":                 {Name: "Dr. Robert Hayes", Specialty: "Lungs & Breathing"},
	"Ophthalmologist":               {Name: "Dr. Jennifer Wu", Specialty: "Eye Care"},
	"Psychiatrist":                  {Name: "Dr. Thomas Berg", Specialty: "Mental Health"},
	"ENT Specialist":                {Name: "Dr. Priya Nair", Specialty: "Ear, Nose & Throat"},
	"Endocrinologist":               {Name: "Dr. Carlos Mendez", Specialty: "Hormones & Metabolism"},
	"Infectious Disease Specialist": {Name: "Dr. Grace Adeyemi", Specialty: "Infections & Fevers"},
	"Sleep Specialist":              {Name: "Dr. Hannah Lindqvist", Specialty: "Sleep Disorders"},
	"Registered Dietitian":          {Name: "Dr. Paul Nguyen", Specialty: "Nutrition & Diet"},
	"Emergency Medicine":            {Name: "Dr. Alex Foster", Specialty: "Emergency & Urgent Care"},
}

// specialistMapping maps condition keywords found in free text to recommended
// specialist types, mirroring the tables in the agent prompts.
var specialistMapping = map[string][]string{
	"headache":       {"Neurologist", "Primary Care Physician"},
	"migraine":       {"Neurologist"},
	"chest pain":     {"Cardiologist"},
	"heart":          {"Cardiologist"},
	"blood pressure": {"Cardiologist", "Primary Care Physician"},
	"stomach":        {"Gastroenterologist"},
	"digestive":      {"Gastroenterologist"},
	"abdominal":      {"Gastroenterologist"},
	"skin":           {"Dermatologist"},
	"rash":           {"Dermatologist"},
	"pregnancy":      {"OB-GYN"},
	"pregnant":       {"OB-GYN"},
	"joint":          {"Orthopedist", "Rheumatologist"},
	"bone":           {"Orthopedist"},
	"back pain":      {"Orthopedist"},
	"breathing":      {"Pulmonologist"},
	"asthma":         {"Pulmonologist"},
	"vision":         {"Ophthalmologist"},
	"eye":            {"Ophthalmologist"},
	"anxiety":        {"Psychiatrist"},
	"depression":     {"Psychiatrist"},
	"mental":         {"Psychiatrist"},
	"stress":         {"Psychiatrist", "Primary Care Physician"},
	"dizziness":      {"ENT Specialist", "Neurologist"},
	"ear":            {"ENT Specialist"},
	"diabetes":       {"Endocrinologist"},
	"thyroid":        {"Endocrinologist"},
	"fever":          {"Infectious Disease Specialist", "Primary Care Physician"},
	"infection":      {"Infectious Disease Specialist"},
	"sleep":          {"Sleep Specialist", "Primary Care Physician"},
	"insomnia":       {"Sleep Specialist"},
	"diet":           {"Registered Dietitian", "Primary Care Physician"},
	"nutrition":      {"Registered Dietitian"},
	"weight":         {"Primary Care Physician", "Endocrinologist"},
	"medication":     {"Primary Care Physician"},
}
