package generator

var firstNames = []string{
	"James", "Maria", "Robert", "Linda", "Michael", "Patricia", "David",
	"Jennifer", "Carlos", "Susan", "Ahmed", "Karen", "Wei", "Nancy", "Raj",
	"Lisa", "Omar", "Sandra", "Dmitri", "Ashley", "Kenji", "Emily", "Luis",
	"Michelle", "Ivan", "Amanda", "Hassan", "Stephanie", "Pavel", "Rebecca",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson",
}

var streets = []string{
	"Maple St", "Oak Ave", "Cedar Ln", "Elm Dr", "Pine Rd", "Birch Blvd",
	"Willow Way", "Chestnut Ct", "Sycamore Pl", "Juniper Ter", "Magnolia Ave",
	"Dogwood Ln", "Hickory St", "Aspen Dr", "Poplar Rd",
}

var cities = []string{
	"Springfield", "Riverton", "Fairview", "Lakeside", "Brookhaven",
	"Greenfield", "Mapleton", "Ashford", "Clearwater", "Hillcrest",
}

var shopNames = []string{
	"Precision", "Apex", "Summit", "Reliable", "Express", "Premier",
	"Metro", "AllStar", "ProTech", "Citywide", "Golden", "Rapid",
}

var shopSuffixes = []string{
	"Auto Body", "Collision Center", "Auto Repair", "Body Works",
	"Paint & Body", "Auto Care",
}

var specialties = []string{
	"chiropractic", "physical therapy", "orthopedics", "pain management",
	"radiology", "general practice",
}

var vehicleMakes = []string{
	"Toyota", "Honda", "Ford", "Chevrolet", "Nissan", "Hyundai", "Kia",
	"Subaru", "Volkswagen", "Mazda",
}

var vehicleModels = []string{
	"Sedan LX", "Coupe SE", "Hatchback S", "SUV XL", "Crossover GT",
	"Pickup XT", "Wagon TS", "Minivan EX",
}
