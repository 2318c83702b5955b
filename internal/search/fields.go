package search

// Family names the entity graph a predicate is compiled against.
type Family string

const (
	FamilyAnnouncement Family = "announcement"
	FamilyCompany      Family = "company"
	FamilyUser         Family = "user"
)

// Join identifies which object in the entity graph owns a column. JoinRoot is
// the family's own table.
type Join string

const (
	JoinRoot       Join = ""
	JoinAuthor     Join = "author"
	JoinRealEstate Join = "real_estate"
	JoinLocation   Join = "location"
	JoinCompany    Join = "company"
)

// Field is a static descriptor from a logical criteria name to the joined
// column that stores it.
type Field struct {
	Name   string
	Join   Join
	Column string
}

// Path is the dotted join path, e.g. "real_estate.heating_type".
func (f Field) Path() string {
	if f.Join == JoinRoot {
		return f.Column
	}
	return string(f.Join) + "." + f.Column
}

// announcement graph: announcements -> author (users), real_estate -> location
var (
	annDeleted         = Field{Name: "deleted", Join: JoinRoot, Column: "deleted"}
	annID              = Field{Name: "id", Join: JoinRoot, Column: "id"}
	annTitle           = Field{Name: "title", Join: JoinRoot, Column: "title"}
	annCreatedAt       = Field{Name: "createdAt", Join: JoinRoot, Column: "created_at"}
	annPrice           = Field{Name: "price", Join: JoinRoot, Column: "price"}
	annPhoneNumber     = Field{Name: "phoneNumber", Join: JoinRoot, Column: "phone_number"}
	annType            = Field{Name: "type", Join: JoinRoot, Column: "type"}
	annAuthorName      = Field{Name: "authorName", Join: JoinAuthor, Column: "first_name"}
	annAuthorSurname   = Field{Name: "authorSurname", Join: JoinAuthor, Column: "last_name"}
	annArea            = Field{Name: "area", Join: JoinRealEstate, Column: "area"}
	annHeatingType     = Field{Name: "heatingType", Join: JoinRealEstate, Column: "heating_type"}
	annPropertyName    = Field{Name: "propertyName", Join: JoinRealEstate, Column: "name"}
	annParking         = Field{Name: "parking", Join: JoinRealEstate, Column: "parking"}
	annBalcony         = Field{Name: "balcony", Join: JoinRealEstate, Column: "balcony"}
	annFurnished       = Field{Name: "furnished", Join: JoinRealEstate, Column: "furnished"}
	annAirConditioning = Field{Name: "airConditioning", Join: JoinRealEstate, Column: "air_conditioning"}
	annCountry         = Field{Name: "country", Join: JoinLocation, Column: "country"}
	annCity            = Field{Name: "city", Join: JoinLocation, Column: "city"}
	annStreet          = Field{Name: "street", Join: JoinLocation, Column: "street"}
)

// company graph: companies -> location
var (
	compDeleted     = Field{Name: "deleted", Join: JoinRoot, Column: "deleted"}
	compID          = Field{Name: "id", Join: JoinRoot, Column: "id"}
	compName        = Field{Name: "name", Join: JoinRoot, Column: "name"}
	compEmail       = Field{Name: "email", Join: JoinRoot, Column: "email"}
	compPhoneNumber = Field{Name: "phoneNumber", Join: JoinRoot, Column: "phone_number"}
	compCountry     = Field{Name: "country", Join: JoinLocation, Column: "country"}
	compCity        = Field{Name: "city", Join: JoinLocation, Column: "city"}
)

// user graph: users -> company
var (
	userDeleted         = Field{Name: "deleted", Join: JoinRoot, Column: "deleted"}
	userID              = Field{Name: "id", Join: JoinRoot, Column: "id"}
	userFirstName       = Field{Name: "firstName", Join: JoinRoot, Column: "first_name"}
	userLastName        = Field{Name: "lastName", Join: JoinRoot, Column: "last_name"}
	userEmail           = Field{Name: "email", Join: JoinRoot, Column: "email"}
	userPhoneNumber     = Field{Name: "phoneNumber", Join: JoinRoot, Column: "phone_number"}
	userCompanyVerified = Field{Name: "companyVerified", Join: JoinRoot, Column: "company_verified"}
	userCompanyName     = Field{Name: "companyName", Join: JoinCompany, Column: "name"}
)

var sortable = map[Family]map[string]Field{
	FamilyAnnouncement: {
		annID.Name:        annID,
		annTitle.Name:     annTitle,
		annPrice.Name:     annPrice,
		annArea.Name:      annArea,
		annCreatedAt.Name: annCreatedAt,
	},
	FamilyCompany: {
		compID.Name:   compID,
		compName.Name: compName,
	},
	FamilyUser: {
		userID.Name:        userID,
		userEmail.Name:     userEmail,
		userLastName.Name:  userLastName,
		userFirstName.Name: userFirstName,
	},
}

var defaultSort = map[Family]Field{
	FamilyAnnouncement: annID,
	FamilyCompany:      compID,
	FamilyUser:         userID,
}
