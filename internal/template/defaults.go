package template

// Built-in canonical phrasings per industry, used when no configuration
// rows exist for an industry yet. Placeholders are substituted later by
// the post-processor; unresolved ones are left verbatim.
var builtinTemplates = map[string]map[string]string{
	"restaurant": {
		"greet":            "Hi! Welcome to {{company_name}} 😊 How can I help you today?",
		"greeting":         "Hi! Welcome to {{company_name}} 😊 How can I help you today?",
		"business_hours":   "🍽️ {{company_name}} is open from {{business_hours}} at {{location}}.",
		"pricing":          "Our pricing may vary depending on your order. For details, contact us at {{contact_email}}.",
		"price_range":      "Our typical price range is {{price_range}}. For more details, contact us at {{contact_email}}.",
		"menu":             "Here are our specialties: {{specialties}}. We serve {{cuisine_type}} cuisine in a {{restaurant_style}} style.",
		"dining_options":   "We offer {{dining_options}}. Let us know if you'd like delivery or takeaway.",
		"reservation":      "Reservations are {{supports_reservations}}. Book here: {{reservation_link}}.",
		"seating_capacity": "Our seating capacity is {{seating_capacity}} guests. For large groups, please contact {{contact_email}}.",
		"booking":          "Sure! What date/time would you like to reserve, and how many pax?",
		"location":         "{{company_name}} is located at {{location}}.",
		"website":          "You can visit {{company_name}} online at {{website_url}}.",
		"contact_support":  "You can reach us at {{contact_email}} or {{contact_phone}}.",
		"fallback":         "Sorry — I’m not sure about that. You can contact us at {{contact_email}}.",
	},
	"education": {
		"greet":           "Hi! Welcome to {{company_name}} 🎓 How can I assist you today?",
		"greeting":        "Hi! Welcome to {{company_name}} 🎓 How can I assist you today?",
		"business_hours":  "{{company_name}} operates during {{business_hours}}. Would you like admissions help?",
		"pricing":         "Fees vary by course or program. Please email {{contact_email}} for the latest details.",
		"price_range":     "Fees vary by course or program. Please email {{contact_email}} for the latest details.",
		"courses":         "We offer {{course_types}} for {{target_audience}}. Popular programs include {{key_programs}}.",
		"intake":          "Upcoming intake periods: {{intake_periods}}.",
		"apply":           "You can apply here: {{application_link}}. Typical response time is {{response_time}}.",
		"delivery_mode":   "We offer {{delivery_mode}} learning options.",
		"booking":         "Sure — are you looking to book a consultation or enroll in a course?",
		"location":        "{{company_name}} is located at {{location}}.",
		"website":         "You can find more information at {{website_url}}.",
		"contact_support": "You can contact our team at {{contact_email}} or {{contact_phone}}.",
		"fallback":        "Sorry — I’m not sure about that. Please reach out at {{contact_email}}.",
	},
	"retail": {
		"greet":           "Hi! Welcome to {{company_name}} 🛍️ How can I help you today?",
		"greeting":        "Hi! Welcome to {{company_name}} 🛍️ How can I help you today?",
		"business_hours":  "{{company_name}} is open from {{business_hours}} at {{location}}.",
		"pricing":         "Prices may vary by product. For promotions or inquiries, contact us at {{contact_email}}.",
		"price_range":     "Prices may vary by product. For promotions or inquiries, contact us at {{contact_email}}.",
		"products":        "We carry {{product_categories}}. Let us know what you're looking for!",
		"delivery":        "Delivery options: {{delivery_options}}. Online store: {{online_store_url}}.",
		"returns":         "Our return policy: {{return_policy}}.",
		"warranty":        "Warranty information: {{warranty_info}}.",
		"payment_methods": "We accept {{payment_methods}}.",
		"booking":         "Are you looking to reserve an item, check availability, or place an order?",
		"location":        "{{company_name}} store is located at {{location}}.",
		"website":         "Our website is {{website_url}}.",
		"contact_support": "You can reach our support team at {{contact_email}} or {{contact_phone}}.",
		"fallback":        "Sorry — I’m not sure about that. Please contact us at {{contact_email}}.",
	},
	"default": {
		"greet":    "Hi! How can I help you today?",
		"greeting": "Hi! How can I help you today?",
		"website":  "You can visit our website at {{website_url}}.",
		"fallback": "Sorry — I’m not sure about that yet. Please contact {{contact_email}}.",
	},
}

// globalFallback is the absolute last resort; a reply is never empty.
const globalFallback = "Sorry — I’m not sure about that yet. Please contact {{contact_email}}."

// Built-in quick replies per language. English is always available;
// missing languages fall back to it.
var builtinQuickReplies = map[string][]string{
	"en": {
		"Business hours",
		"Location",
		"Pricing",
		"Contact support",
		"Make a booking",
	},
	"fr": {
		"Heures d'ouverture",
		"Localisation",
		"Tarifs",
		"Contacter le support",
		"Faire une réservation",
	},
	"zh": {
		"营业时间",
		"地址",
		"价格",
		"联系客服",
		"预约",
	},
}
