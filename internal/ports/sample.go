package ports

// Sample returns the fixed demo port list shown by the dashboard. Each call
// returns a fresh copy.
func Sample() []Port {
	return []Port{
		{
			ID: "port-3000", Number: 3000,
			Name:        "React Development Server",
			Description: "Frontend development server for React applications",
			Status:      StatusActive, Protocol: ProtocolHTTP,
			ProcessName: "node", PID: 12345, User: "developer",
			MemoryUsage: "256 MB", CPUUsage: "12%", Connections: 3,
			LastActivity: "2 minutes ago", Uptime: "5 hours",
			LocalAddress: "127.0.0.1:3000", RemoteAddress: "192.168.1.100:55000",
			Security: SecurityLow,
			Tags:     []string{"development", "frontend", "hot-reload"},
		},
		{
			ID: "port-8000", Number: 8000,
			Name:        "Python API Server",
			Description: "Backend API server for web applications",
			Status:      StatusActive, Protocol: ProtocolHTTP,
			ProcessName: "python", PID: 23456, User: "api",
			MemoryUsage: "512 MB", CPUUsage: "24%", Connections: 42,
			LastActivity: "Just now", Uptime: "2 days",
			LocalAddress: "0.0.0.0:8000",
			Security:     SecurityMedium,
			Tags:         []string{"backend", "api", "production"},
		},
		{
			ID: "port-5432", Number: 5432,
			Name:        "PostgreSQL Database",
			Description: "Relational database management system",
			Status:      StatusActive, Protocol: ProtocolTCP,
			ProcessName: "postgres", PID: 34567, User: "postgres",
			MemoryUsage: "1.2 GB", CPUUsage: "8%", Connections: 18,
			LastActivity: "5 minutes ago", Uptime: "7 days",
			LocalAddress: "127.0.0.1:5432",
			Security:     SecurityHigh, System: true,
			Tags: []string{"database", "persistence", "critical"},
		},
		{
			ID: "port-8080", Number: 8080,
			Name:        "Java Application Server",
			Description: "Enterprise Java application server",
			Status:      StatusWarning, Protocol: ProtocolHTTP,
			ProcessName: "java", PID: 45678, User: "appuser",
			MemoryUsage: "2.1 GB", CPUUsage: "65%", Connections: 128,
			LastActivity: "1 minute ago", Uptime: "1 day",
			LocalAddress: "0.0.0.0:8080",
			Security:     SecurityMedium,
			Tags:         []string{"enterprise", "java", "high-memory"},
		},
		{
			ID: "port-6379", Number: 6379,
			Name:        "Redis Cache",
			Description: "In-memory data structure store",
			Status:      StatusActive, Protocol: ProtocolTCP,
			ProcessName: "redis-server", PID: 56789, User: "redis",
			MemoryUsage: "128 MB", CPUUsage: "3%", Connections: 24,
			LastActivity: "30 seconds ago", Uptime: "14 days",
			LocalAddress: "127.0.0.1:6379",
			Security:     SecurityMedium, System: true,
			Tags: []string{"cache", "memory", "fast"},
		},
		{
			ID: "port-27017", Number: 27017,
			Name:        "MongoDB Database",
			Description: "NoSQL document database",
			Status:      StatusError, Protocol: ProtocolTCP,
			ProcessName: "mongod", PID: 67890, User: "mongodb",
			MemoryUsage: "890 MB", CPUUsage: "95%", Connections: 0,
			LastActivity: "10 minutes ago", Uptime: "3 hours",
			LocalAddress: "127.0.0.1:27017",
			Security:     SecurityHigh,
			Tags:         []string{"database", "nosql", "document"},
		},
		{
			ID: "port-9200", Number: 9200,
			Name:        "Elasticsearch",
			Description: "Search and analytics engine",
			Status:      StatusInactive, Protocol: ProtocolHTTP,
			ProcessName: "elasticsearch", PID: 78901, User: "elastic",
			MemoryUsage: "0 MB", CPUUsage: "0%", Connections: 0,
			LastActivity: "1 hour ago", Uptime: "0",
			LocalAddress: "127.0.0.1:9200",
			Security:     SecurityHigh,
			Tags:         []string{"search", "analytics", "big-data"},
		},
		{
			ID: "port-5601", Number: 5601,
			Name:        "Kibana Dashboard",
			Description: "Data visualization dashboard for Elasticsearch",
			Status:      StatusActive, Protocol: ProtocolHTTPS,
			ProcessName: "kibana", PID: 89012, User: "kibana",
			MemoryUsage: "420 MB", CPUUsage: "15%", Connections: 8,
			LastActivity: "Just now", Uptime: "1 day",
			LocalAddress: "127.0.0.1:5601",
			Security:     SecurityMedium,
			Tags:         []string{"visualization", "dashboard", "monitoring"},
		},
	}
}
