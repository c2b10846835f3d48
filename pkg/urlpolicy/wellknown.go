package urlpolicy

// wellKnownServicePorts maps ports of common internal backend services to
// their service names. These are destinations an attacker-influenced outbound
// request should never reach directly. 8080 and 8443 are deliberately absent:
// they are common HTTP/HTTPS alternates, not internal services.
var wellKnownServicePorts = map[int]string{
	22:    "SSH",
	23:    "Telnet",
	25:    "SMTP",
	53:    "DNS",
	110:   "POP3",
	143:   "IMAP",
	389:   "LDAP",
	445:   "SMB",
	636:   "LDAPS",
	1433:  "MSSQL",
	1521:  "Oracle",
	3306:  "MySQL",
	3389:  "RDP",
	5432:  "PostgreSQL",
	5900:  "VNC",
	6379:  "Redis",
	27017: "MongoDB",
}
