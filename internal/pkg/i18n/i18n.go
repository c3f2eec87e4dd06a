// Package i18n holds the bilingual (English/Arabic) UI string catalog and
// the Accept-Language negotiation used by the translations endpoint.
package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is served when negotiation fails.
const DefaultLanguage = "en"

// SupportedLanguages lists the UI languages in matcher priority order.
var SupportedLanguages = []string{"en", "ar"}

var (
	supportedTags = []language.Tag{language.English, language.Arabic}
	matcher       = language.NewMatcher(supportedTags)
)

// catalogs maps language code → key → UI string. The key set is identical
// across languages.
var catalogs = map[string]map[string]string{
	"en": {
		"dashboard":               "Dashboard",
		"clients":                 "Clients",
		"orders":                  "Orders",
		"invoices":                "Invoices",
		"reports":                 "Reports",
		"settings":                "Settings",
		"totalClients":            "Total Clients",
		"activeOrders":            "Active Orders",
		"pendingInvoices":         "Pending Invoices",
		"totalRevenue":            "Total Revenue",
		"recentClients":           "Recent Clients",
		"recentOrders":            "Recent Orders",
		"recentInvoices":          "Recent Invoices",
		"viewAll":                 "View All",
		"search":                  "Search",
		"newClient":               "New Client",
		"newOrder":                "New Order",
		"newInvoice":              "New Invoice",
		"edit":                    "Edit",
		"delete":                  "Delete",
		"cancel":                  "Cancel",
		"save":                    "Save",
		"create":                  "Create",
		"update":                  "Update",
		"name":                    "Name",
		"email":                   "Email",
		"phone":                   "Phone",
		"agency":                  "Agency",
		"position":                "Position",
		"notes":                   "Notes",
		"status":                  "Status",
		"amount":                  "Amount",
		"date":                    "Date",
		"dueDate":                 "Due Date",
		"issueDate":               "Issue Date",
		"paid":                    "Paid",
		"pending":                 "Pending",
		"overdue":                 "Overdue",
		"canceled":                "Canceled",
		"title":                   "Title",
		"description":             "Description",
		"tweetUrl":                "Tweet URL",
		"client":                  "Client",
		"order":                   "Order",
		"invoice":                 "Invoice",
		"invoiceNumber":           "Invoice Number",
		"actions":                 "Actions",
		"confirmed":               "Confirmed",
		"inProgress":              "In Progress",
		"completed":               "Completed",
		"profile":                 "Profile",
		"security":                "Security",
		"userManagement":          "User Management",
		"darkMode":                "Dark Mode",
		"logOut":                  "Log Out",
		"password":                "Password",
		"currentPassword":         "Current Password",
		"newPassword":             "New Password",
		"confirmPassword":         "Confirm Password",
		"updatePassword":          "Update Password",
		"username":                "Username",
		"role":                    "Role",
		"admin":                   "Administrator",
		"user":                    "User",
		"editor":                  "Editor",
		"viewer":                  "Viewer",
		"accessDenied":            "Access Denied",
		"insufficientPermissions": "Insufficient Permissions",
		"roleDescription":         "Determines user access level",
	},
	"ar": {
		"dashboard":               "لوحة المعلومات",
		"clients":                 "العملاء",
		"orders":                  "الطلبات",
		"invoices":                "الفواتير",
		"reports":                 "التقارير",
		"settings":                "الإعدادات",
		"totalClients":            "إجمالي العملاء",
		"activeOrders":            "الطلبات النشطة",
		"pendingInvoices":         "الفواتير المعلقة",
		"totalRevenue":            "إجمالي الإيرادات",
		"recentClients":           "العملاء الجدد",
		"recentOrders":            "أحدث الطلبات",
		"recentInvoices":          "أحدث الفواتير",
		"viewAll":                 "عرض الكل",
		"search":                  "بحث",
		"newClient":               "عميل جديد",
		"newOrder":                "طلب جديد",
		"newInvoice":              "فاتورة جديدة",
		"edit":                    "تعديل",
		"delete":                  "حذف",
		"cancel":                  "إلغاء",
		"save":                    "حفظ",
		"create":                  "إنشاء",
		"update":                  "تحديث",
		"name":                    "الاسم",
		"email":                   "البريد الإلكتروني",
		"phone":                   "الهاتف",
		"agency":                  "الوكالة",
		"position":                "المنصب",
		"notes":                   "ملاحظات",
		"status":                  "الحالة",
		"amount":                  "المبلغ",
		"date":                    "التاريخ",
		"dueDate":                 "تاريخ الاستحقاق",
		"issueDate":               "تاريخ الإصدار",
		"paid":                    "مدفوع",
		"pending":                 "معلق",
		"overdue":                 "متأخر",
		"canceled":                "ملغي",
		"title":                   "العنوان",
		"description":             "الوصف",
		"tweetUrl":                "رابط التغريدة",
		"client":                  "العميل",
		"order":                   "الطلب",
		"invoice":                 "الفاتورة",
		"invoiceNumber":           "رقم الفاتورة",
		"actions":                 "إجراءات",
		"confirmed":               "مؤكد",
		"inProgress":              "قيد التنفيذ",
		"completed":               "مكتمل",
		"profile":                 "الملف الشخصي",
		"security":                "الأمان",
		"userManagement":          "إدارة المستخدمين",
		"darkMode":                "الوضع الداكن",
		"logOut":                  "تسجيل الخروج",
		"password":                "كلمة المرور",
		"currentPassword":         "كلمة المرور الحالية",
		"newPassword":             "كلمة المرور الجديدة",
		"confirmPassword":         "تأكيد كلمة المرور",
		"updatePassword":          "تحديث كلمة المرور",
		"username":                "اسم المستخدم",
		"role":                    "الدور",
		"admin":                   "مدير",
		"user":                    "مستخدم",
		"editor":                  "محرر",
		"viewer":                  "مشاهد",
		"accessDenied":            "تم رفض الوصول",
		"insufficientPermissions": "صلاحيات غير كافية",
		"roleDescription":         "يحدد مستوى وصول المستخدم",
	},
}

// Catalog returns the full key→string table for a language. Unsupported
// languages fall back to the default. The returned map is a copy.
func Catalog(lang string) map[string]string {
	src, ok := catalogs[lang]
	if !ok {
		src = catalogs[DefaultLanguage]
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// T translates a single key. Missing keys fall back to English, then to the
// key itself so the UI never renders an empty string.
func T(lang, key string) string {
	if msgs, ok := catalogs[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// MatchLanguage resolves an Accept-Language header (or a bare language
// code) to a supported language, defaulting to English.
func MatchLanguage(acceptLang string) string {
	if acceptLang == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return DefaultLanguage
		}
		tags = []language.Tag{tag}
	}
	_, idx, _ := matcher.Match(tags...)
	if idx >= 0 && idx < len(SupportedLanguages) {
		return SupportedLanguages[idx]
	}
	return DefaultLanguage
}

// IsSupported reports whether the language code has a catalog.
func IsSupported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}
