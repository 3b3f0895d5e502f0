package navigation

import "github.com/louisbranch/docstats/internal/services/web/routepath"

// View identifiers bound by the default route table.
const (
	ViewRegister           = "register"
	ViewVerifyEmail        = "verify-email"
	ViewLogin              = "login"
	ViewUpload             = "upload"
	ViewDocumentList       = "document-list"
	ViewDocumentDetail     = "document-detail"
	ViewDocumentStatistics = "document-statistics"
	ViewCollectionList     = "collection-list"
	ViewCollectionDetail   = "collection-detail"
	ViewProfile            = "profile"
)

// Route names referenced by views.
const (
	NameVerifyEmail = "VerifyEmail"
	NameProfile     = "Profile"
)

var protected = Meta{RequiresAuth: true}

// DefaultRoutes returns the web client's route table in declaration order.
func DefaultRoutes() []Route {
	return []Route{
		{Path: routepath.Register, View: ViewRegister},
		{Path: routepath.VerifyEmail, View: ViewVerifyEmail, Name: NameVerifyEmail},
		{Path: routepath.Login, View: ViewLogin},
		{Path: routepath.Root, View: ViewUpload, Meta: protected},
		{Path: routepath.Documents, View: ViewDocumentList, Meta: protected},
		{Path: routepath.DocumentPattern, View: ViewDocumentDetail, Meta: protected},
		{Path: routepath.DocumentStatsPattern, View: ViewDocumentStatistics, Meta: protected},
		{Path: routepath.Collections, View: ViewCollectionList, Meta: protected},
		{Path: routepath.CollectionPattern, View: ViewCollectionDetail, Meta: protected},
		{Path: routepath.Profile, View: ViewProfile, Name: NameProfile, Meta: protected},
	}
}

// DefaultTable compiles DefaultRoutes.
func DefaultTable() *Table {
	table, err := NewTable(DefaultRoutes())
	if err != nil {
		panic("navigation: default route table is invalid: " + err.Error())
	}
	return table
}
