package i18n

// Message keys used by the dashboards
const (
	KeyFarmerDashboard      = "dashboard.farmer_dashboard"
	KeyDistributorDashboard = "dashboard.distributor_dashboard"
	KeyRetailerDashboard    = "dashboard.retailer_dashboard"
	KeyConsumerDashboard    = "dashboard.consumer_dashboard"
	KeyAdminDashboard       = "dashboard.admin_dashboard"

	KeyTotalProducts    = "dashboard.total_products"
	KeyHarvestedToday   = "dashboard.harvested_today"
	KeyInTransit        = "dashboard.in_transit"
	KeyQRCodesGenerated = "dashboard.qr_codes_generated"
	KeyActiveShipments  = "dashboard.active_shipments"
	KeyDeliveredToday   = "dashboard.delivered_today"
	KeyPendingApprovals = "dashboard.pending_approvals"
	KeyTotalHandled     = "dashboard.total_handled"
	KeyAvailable        = "dashboard.available"
	KeyLowStock         = "dashboard.low_stock"
	KeyOutOfStock       = "dashboard.out_of_stock"
	KeyScannedProducts  = "dashboard.scanned_products"
	KeyVerifiedProducts = "dashboard.verified_products"
	KeyThisMonth        = "dashboard.this_month"
	KeyTrustScore       = "dashboard.trust_score"
	KeyTotalUsers       = "dashboard.total_users"
	KeyFraudDetected    = "dashboard.fraud_detected"
	KeyTransactionsDay  = "dashboard.transactions_today"

	KeyInvalidRoleTitle   = "dashboard.invalid_role"
	KeyInvalidRoleMessage = "dashboard.invalid_role_message"
	KeyUnauthorizedTitle  = "auth.unauthorized"
	KeyUnauthorizedText   = "auth.unauthorized_message"
)

var messages = map[string]map[string]string{
	"en": {
		KeyFarmerDashboard:      "Farmer Dashboard",
		KeyDistributorDashboard: "Distributor Dashboard",
		KeyRetailerDashboard:    "Retailer Dashboard",
		KeyConsumerDashboard:    "Consumer Dashboard",
		KeyAdminDashboard:       "Admin Dashboard",
		KeyTotalProducts:        "Total Products",
		KeyHarvestedToday:       "Harvested Today",
		KeyInTransit:            "In Transit",
		KeyQRCodesGenerated:     "QR Codes Generated",
		KeyActiveShipments:      "Active Shipments",
		KeyDeliveredToday:       "Delivered Today",
		KeyPendingApprovals:     "Pending Approvals",
		KeyTotalHandled:         "Total Handled",
		KeyAvailable:            "Available",
		KeyLowStock:             "Low Stock",
		KeyOutOfStock:           "Out of Stock",
		KeyScannedProducts:      "Scanned Products",
		KeyVerifiedProducts:     "Verified Products",
		KeyThisMonth:            "This Month",
		KeyTrustScore:           "Trust Score",
		KeyTotalUsers:           "Total Users",
		KeyFraudDetected:        "Fraud Detected",
		KeyTransactionsDay:      "Transactions Today",
		KeyInvalidRoleTitle:     "Invalid Role",
		KeyInvalidRoleMessage:   "Please contact an administrator to assign you a proper role.",
		KeyUnauthorizedTitle:    "Access Denied",
		KeyUnauthorizedText:     "You need to connect your wallet and log in to view this page.",
	},
	"hi": {
		KeyFarmerDashboard:      "किसान डैशबोर्ड",
		KeyDistributorDashboard: "वितरक डैशबोर्ड",
		KeyRetailerDashboard:    "खुदरा विक्रेता डैशबोर्ड",
		KeyConsumerDashboard:    "उपभोक्ता डैशबोर्ड",
		KeyAdminDashboard:       "व्यवस्थापक डैशबोर्ड",
		KeyTotalProducts:        "कुल उत्पाद",
		KeyHarvestedToday:       "आज की कटाई",
		KeyInTransit:            "पारगमन में",
		KeyQRCodesGenerated:     "बनाए गए क्यूआर कोड",
		KeyActiveShipments:      "सक्रिय शिपमेंट",
		KeyDeliveredToday:       "आज वितरित",
		KeyPendingApprovals:     "लंबित अनुमोदन",
		KeyTotalHandled:         "कुल संभाले गए",
		KeyAvailable:            "उपलब्ध",
		KeyLowStock:             "कम स्टॉक",
		KeyOutOfStock:           "स्टॉक समाप्त",
		KeyScannedProducts:      "स्कैन किए गए उत्पाद",
		KeyVerifiedProducts:     "सत्यापित उत्पाद",
		KeyThisMonth:            "इस महीने",
		KeyTrustScore:           "विश्वास स्कोर",
		KeyTotalUsers:           "कुल उपयोगकर्ता",
		KeyFraudDetected:        "धोखाधड़ी पाई गई",
		KeyTransactionsDay:      "आज के लेनदेन",
		KeyInvalidRoleTitle:     "अमान्य भूमिका",
		KeyInvalidRoleMessage:   "कृपया उचित भूमिका के लिए व्यवस्थापक से संपर्क करें।",
		KeyUnauthorizedTitle:    "पहुँच अस्वीकृत",
		KeyUnauthorizedText:     "इस पृष्ठ को देखने के लिए अपना वॉलेट जोड़ें और लॉग इन करें।",
	},
	"bn": {
		KeyFarmerDashboard: "কৃষক ড্যাশবোর্ড",
		KeyTotalProducts:   "মোট পণ্য",
		KeyInTransit:       "পরিবহনে",
		KeyAvailable:       "উপলব্ধ",
	},
	"mr": {
		KeyFarmerDashboard: "शेतकरी डॅशबोर्ड",
		KeyTotalProducts:   "एकूण उत्पादने",
		KeyInTransit:       "वाहतुकीत",
		KeyAvailable:       "उपलब्ध",
	},
	"te": {
		KeyFarmerDashboard: "రైతు డాష్‌బోర్డ్",
		KeyTotalProducts:   "మొత్తం ఉత్పత్తులు",
		KeyAvailable:       "అందుబాటులో ఉంది",
	},
	"ta": {
		KeyFarmerDashboard: "விவசாயி டாஷ்போர்டு",
		KeyTotalProducts:   "மொத்த தயாரிப்புகள்",
		KeyAvailable:       "கிடைக்கிறது",
	},
	"gu": {
		KeyFarmerDashboard: "ખેડૂત ડેશબોર્ડ",
		KeyTotalProducts:   "કુલ ઉત્પાદનો",
		KeyAvailable:       "ઉપલબ્ધ",
	},
	"ur": {
		KeyFarmerDashboard: "کسان ڈیش بورڈ",
		KeyTotalProducts:   "کل مصنوعات",
		KeyAvailable:       "دستیاب",
	},
}
